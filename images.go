package quill

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const jpegQuality = 80

// ImageSize names a cover-image rendition.
type ImageSize struct {
	Name          string
	Width, Height int
}

var (
	SizeCard = ImageSize{Name: "card", Width: 300, Height: 200}
	SizeHero = ImageSize{Name: "hero", Width: 800, Height: 400}
)

var imageSizes = map[string]ImageSize{
	SizeCard.Name: SizeCard,
	SizeHero.Name: SizeHero,
}

// CoverURL returns the URL a view should use for a post's cover image.
// Images under /public/ are served through the resizing endpoint; remote
// images are linked directly.
func CoverURL(p Post, size ImageSize) string {
	if p.ImageURL == "" || !strings.HasPrefix(p.ImageURL, "/public/") {
		return p.ImageURL
	}
	return "/img/" + p.ID + "/" + size.Name
}

// coverImage decodes src, crops it to the target aspect ratio around the
// center and scales it to w x h. The result is JPEG-encoded.
func coverImage(src io.Reader, w, h int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	var crop image.Rectangle
	if b.Dx()*h > b.Dy()*w {
		cw := b.Dy() * w / h
		x0 := b.Min.X + (b.Dx()-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else {
		ch := b.Dx() * h / w
		y0 := b.Min.Y + (b.Dy()-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

type imageKey struct {
	path    string
	size    string
	modTime time.Time
}

// imageCache keeps resized renditions keyed by source file and mtime, so an
// edited image is picked up without a restart.
type imageCache struct {
	mu    sync.Mutex
	items map[imageKey][]byte
}

func newImageCache() *imageCache {
	return &imageCache{items: make(map[imageKey][]byte)}
}

func (ic *imageCache) get(path string, size ImageSize) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := imageKey{path: path, size: size.Name, modTime: info.ModTime()}

	ic.mu.Lock()
	data, ok := ic.items[key]
	ic.mu.Unlock()
	if ok {
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err = coverImage(f, size.Width, size.Height)
	if err != nil {
		return nil, err
	}

	ic.mu.Lock()
	for k := range ic.items {
		if k.path == path && k.size == size.Name {
			delete(ic.items, k)
		}
	}
	ic.items[key] = data
	ic.mu.Unlock()
	return data, nil
}

func (a *App) handleImage(c echo.Context) error {
	size, ok := imageSizes[c.Param("size")]
	if !ok {
		return echo.ErrNotFound
	}
	post, err := a.Cache.GetPost(c.Param("id"))
	if err != nil {
		return err
	}
	if post.ImageURL == "" {
		return echo.ErrNotFound
	}
	if !strings.HasPrefix(post.ImageURL, "/public/") {
		return c.Redirect(http.StatusFound, post.ImageURL)
	}

	rel := filepath.FromSlash(strings.TrimPrefix(post.ImageURL, "/public/"))
	root, err := filepath.Abs(a.staticDir)
	if err != nil {
		return err
	}
	path := filepath.Join(root, rel)
	if !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return echo.ErrNotFound
	}

	data, err := a.images.get(path, size)
	if os.IsNotExist(err) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
