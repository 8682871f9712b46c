package quill

import "time"

const seedImage = "https://images.pexels.com/photos/3622750/pexels-photo-3622750.png?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1"

var seedAuthor = Author{Name: "John Doe", Avatar: seedImage}

// DefaultProfile is the owner card used when no profile file is configured.
func DefaultProfile() Profile {
	return Profile{
		Name:        "John Doe",
		Avatar:      seedImage,
		JobTitle:    "Full Stack Developer",
		Description: "Passionate about creating elegant solutions to complex problems. Always learning, always coding.",
		Social: []SocialLink{
			{Name: "GitHub", URL: "https://github.com/johndoe"},
			{Name: "Twitter", URL: "https://twitter.com/johndoe"},
			{Name: "LinkedIn", URL: "https://linkedin.com/in/johndoe"},
		},
	}
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedPosts returns the demo posts a fresh site starts with.
func SeedPosts() []Post {
	return []Post{
		{
			ID:          "1",
			Title:       "Getting Started with Next.js",
			Description: "Learn how to build modern web applications with Next.js, the React framework for production.",
			Tags:        []string{"Next.js", "React", "Web Development"},
			CreatedAt:   day("2023-10-15"),
			ReadingTime: "5 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content: `<p>Next.js gives React applications routing, rendering and bundling out of the box.</p>
<h2>Creating a project</h2>
<p>Run the project generator, pick a name and start the development server.</p>`,
		},
		{
			ID:          "2",
			Title:       "Mastering Tailwind CSS",
			Description: "Discover the power of utility-first CSS with Tailwind and how it can speed up your development process.",
			Tags:        []string{"CSS", "Tailwind", "Web Design"},
			CreatedAt:   day("2023-10-10"),
			ReadingTime: "7 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content: `<p>Utility classes keep styling next to markup and make design systems easy to enforce.</p>
<h2>Configuring the theme</h2>
<p>Extend colors, spacing and fonts in the configuration file rather than writing custom CSS.</p>`,
		},
		{
			ID:          "3",
			Title:       "The Future of AI in Web Development",
			Description: "Explore how artificial intelligence is shaping the future of web development and what it means for developers.",
			Tags:        []string{"AI", "Web Development", "Future Tech"},
			CreatedAt:   day("2023-10-05"),
			ReadingTime: "10 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     `<p>Assistants that write, review and test code are becoming part of everyday development.</p>`,
		},
		{
			ID:          "4",
			Title:       "The Future of Web Development: Trends to Watch in 2024",
			Description: "AI-assisted tooling, WebAssembly, PWAs, serverless and accessibility: the trends reshaping how we build for the web.",
			Tags:        []string{"Web Development", "Future Tech", "Trends"},
			CreatedAt:   day("2023-10-27"),
			ReadingTime: "10 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     trendsContent,
			Comments: []Comment{
				{
					ID:        "1",
					Author:    Author{Name: "Jane Smith", Avatar: seedImage},
					Content:   "Great article! I'm particularly excited about the potential of Web Assembly.",
					CreatedAt: day("2023-10-28"),
				},
				{
					ID:        "2",
					Author:    Author{Name: "Bob Johnson", Avatar: seedImage},
					Content:   "The emphasis on accessibility is crucial. It's about time we make the web truly inclusive.",
					CreatedAt: day("2023-10-29"),
				},
			},
		},
		{
			ID:          "5",
			Title:       "10 Essential VS Code Extensions for Web Developers",
			Description: "A short list of editor extensions that remove friction from everyday front-end work.",
			Tags:        []string{"Tools", "Web Development"},
			CreatedAt:   day("2023-10-20"),
			ReadingTime: "6 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     `<p>Linters, formatters and a good Git integration pay for themselves within a week.</p>`,
		},
		{
			ID:          "6",
			Title:       "Understanding the Basics of GraphQL",
			Description: "Queries, mutations and schemas explained from the ground up.",
			Tags:        []string{"GraphQL", "API"},
			CreatedAt:   day("2023-09-15"),
			ReadingTime: "8 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     `<p>GraphQL lets clients ask for exactly the fields they need in a single request.</p>`,
		},
		{
			ID:          "7",
			Title:       "The Impact of 5G on Web Applications",
			Description: "Lower latency and higher bandwidth change what is practical to ship to mobile browsers.",
			Tags:        []string{"Mobile", "Future Tech"},
			CreatedAt:   day("2023-09-10"),
			ReadingTime: "4 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     `<p>Faster networks shift the bottleneck from transfer to rendering.</p>`,
		},
		{
			ID:          "8",
			Title:       "Mastering CSS Grid Layout",
			Description: "Two-dimensional layouts without floats or hacks.",
			Tags:        []string{"CSS", "Web Design"},
			CreatedAt:   day("2023-09-05"),
			ReadingTime: "6 min",
			ImageURL:    seedImage,
			Author:      seedAuthor,
			Content:     `<p>Grid areas and the fr unit cover most page layouts in a handful of declarations.</p>`,
		},
	}
}

const trendsContent = `<p>As we approach 2024, the landscape of web development continues to evolve at a rapid pace. New technologies, frameworks, and methodologies are emerging, reshaping how we build and interact with web applications. In this post, we'll explore some of the most exciting trends that are set to define the future of web development.</p>

<h2>1. The Rise of AI-Powered Development</h2>
<p>Artificial Intelligence is no longer just a buzzword; it's becoming an integral part of web development. From AI-assisted coding to intelligent testing and debugging, developers are leveraging machine learning algorithms to streamline their workflows and boost productivity.</p>

<h2>2. Web Assembly: Breaking Performance Barriers</h2>
<p>Web Assembly (Wasm) is gaining traction as a powerful tool for bringing high-performance applications to the web. It allows developers to run code written in languages like C++ and Rust directly in the browser, opening up new possibilities for complex web applications.</p>

<h2>3. Progressive Web Apps: The Best of Both Worlds</h2>
<p>Progressive Web Apps (PWAs) continue to bridge the gap between web and native applications. With improved offline capabilities, push notifications, and app-like interfaces, PWAs are becoming the go-to solution for businesses looking to provide a seamless cross-platform experience.</p>

<h2>4. The Serverless Revolution</h2>
<p>Serverless architecture is changing how we think about backend development. By abstracting away server management, developers can focus on writing code and building features, leading to faster development cycles and more scalable applications.</p>

<h2>5. Enhanced Accessibility and Inclusive Design</h2>
<p>As the web becomes increasingly central to our daily lives, there's a growing emphasis on making it accessible to everyone. Developers are adopting inclusive design practices and leveraging new technologies to create web experiences that cater to users with diverse needs and abilities.</p>

<h2>Conclusion</h2>
<p>The future of web development is exciting and full of possibilities. By staying informed about these trends and embracing new technologies, developers can create more powerful, efficient, and inclusive web experiences. As we move into 2024 and beyond, the web will continue to evolve, and those who adapt will be well-positioned to shape its future.</p>`
