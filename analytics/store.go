package analytics

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for read analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS reads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id TEXT NOT NULL,
			visitor_id TEXT NOT NULL,
			depth REAL NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reads_post_id ON reads(post_id);
		CREATE INDEX IF NOT EXISTS idx_reads_timestamp ON reads(timestamp);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// SaveRead stores a finished reading session. Depth is clamped to [0, 100].
func (s *Store) SaveRead(r *Read) error {
	depth := math.Max(0, math.Min(100, r.Depth))
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	res, err := s.db.Exec(`INSERT INTO reads (post_id, visitor_id, depth, timestamp) VALUES (?, ?, ?, ?)`,
		r.PostID, r.VisitorID, depth, r.Timestamp.UTC())
	if err != nil {
		return err
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

// PostStats returns per-post read aggregates since from, most read first.
func (s *Store) PostStats(from time.Time) ([]PostStat, error) {
	rows, err := s.db.Query(`
		SELECT post_id, COUNT(*), AVG(depth), SUM(CASE WHEN depth >= ? THEN 1 ELSE 0 END)
		FROM reads
		WHERE timestamp >= ?
		GROUP BY post_id
		ORDER BY COUNT(*) DESC, post_id`, CompletedDepth, from.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []PostStat{}
	for rows.Next() {
		var st PostStat
		if err := rows.Scan(&st.PostID, &st.Reads, &st.AvgDepth, &st.Completed); err != nil {
			return nil, err
		}
		st.AvgDepth = math.Round(st.AvgDepth*10) / 10
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// CleanupOldReads deletes reads older than retentionDays.
func (s *Store) CleanupOldReads(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	_, err := s.db.Exec(`DELETE FROM reads WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOldReads(retentionDays); err != nil {
					log.Printf("analytics: cleanup error: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
