package quill

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("quill: post not found")

// Store wraps a SQLite database and provides CRUD operations for posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a writer holds the lock; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL,
    created_at TEXT NOT NULL,
    reading_time TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    author_name TEXT NOT NULL DEFAULT '',
    author_avatar TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
CREATE TABLE IF NOT EXISTS comments (
    post_id TEXT NOT NULL,
    id TEXT NOT NULL,
    author_name TEXT NOT NULL,
    author_avatar TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (post_id, id)
);
`)
	return err
}

const postColumns = `id, title, description, tags, created_at, reading_time, image_url, content, author_name, author_avatar`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (Post, error) {
	var p Post
	var tags, created string
	if err := r.Scan(&p.ID, &p.Title, &p.Description, &tags, &created, &p.ReadingTime,
		&p.ImageURL, &p.Content, &p.Author.Name, &p.Author.Avatar); err != nil {
		return Post{}, err
	}
	p.Tags = ParseTags(tags)
	if t, err := time.Parse(DateLayout, created); err == nil {
		p.CreatedAt = t
	}
	return p, nil
}

// ListPosts returns all posts ordered by creation date descending.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	comments, err := s.listComments(`SELECT post_id, id, author_name, author_avatar, content, created_at FROM comments ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = comments[posts[i].ID]
	}
	return posts, nil
}

func (s *Store) listComments(query string, args ...any) (map[string][]Comment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Comment)
	for rows.Next() {
		var postID, created string
		var c Comment
		if err := rows.Scan(&postID, &c.ID, &c.Author.Name, &c.Author.Avatar, &c.Content, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(DateLayout, created); err == nil {
			c.CreatedAt = t
		}
		out[postID] = append(out[postID], c)
	}
	return out, rows.Err()
}

// GetPost returns a single post by id, or ErrNotFound.
func (s *Store) GetPost(id string) (Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, err
	}
	comments, err := s.listComments(`SELECT post_id, id, author_name, author_avatar, content, created_at FROM comments WHERE post_id = ? ORDER BY created_at, id`, id)
	if err != nil {
		return Post{}, err
	}
	p.Comments = comments[id]
	return p, nil
}

// ListTags returns every distinct tag in first-seen order over ListPosts.
func (s *Store) ListTags() ([]string, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}
	return AllTags(posts), nil
}

// Count returns the number of stored posts.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// SavePost upserts a post and replaces its comments. Tags keep their case and order.
func (s *Store) SavePost(p Post) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("quill: save post: empty id")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertPost(tx, `INSERT OR REPLACE`, p); err != nil {
		return err
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertPost(db execer, verb string, p Post) error {
	if _, err := db.Exec(verb+` INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, FormatTags(p.Tags), p.Date(), p.ReadingTime,
		p.ImageURL, p.Content, p.Author.Name, p.Author.Avatar); err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM comments WHERE post_id = ?`, p.ID); err != nil {
		return err
	}
	for _, c := range p.Comments {
		if _, err := db.Exec(`INSERT INTO comments (post_id, id, author_name, author_avatar, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, c.ID, c.Author.Name, c.Author.Avatar, c.Content, c.Date()); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts posts in one transaction when the store is empty. It reports
// whether anything was written.
func (s *Store) Seed(posts []Post) (bool, error) {
	n, err := s.Count()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	for _, p := range posts {
		if err := insertPost(tx, `INSERT`, p); err != nil {
			return false, fmt.Errorf("quill: seed post %s: %w", p.ID, err)
		}
	}
	return true, tx.Commit()
}

// DeletePost removes a post and its comments.
func (s *Store) DeletePost(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Prune deletes every post whose id is not in keep and returns the deleted
// ids, newest first.
func (s *Store) Prune(keep []string) ([]string, error) {
	posts, err := s.ListPosts()
	if err != nil {
		return nil, err
	}
	kept := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}
	var deleted []string
	for _, p := range posts {
		if _, ok := kept[p.ID]; ok {
			continue
		}
		if err := s.DeletePost(p.ID); err != nil {
			return deleted, fmt.Errorf("quill: prune %s: %w", p.ID, err)
		}
		deleted = append(deleted, p.ID)
	}
	return deleted, nil
}

// FormatTags encodes tags as a JSON array (e.g. ["Go","C, C++"]). Blank
// tags are dropped; the rest keep their case and order.
func FormatTags(tags []string) string {
	clean := FilterEmpty(tags)
	if clean == nil {
		clean = []string{}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ParseTags decodes a tag column written by FormatTags. Rows from older
// databases hold the comma-delimited form (e.g. ",go,web,") and are split.
func ParseTags(tagString string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(tagString), &tags); err == nil {
		if len(tags) == 0 {
			return nil
		}
		return tags
	}
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
