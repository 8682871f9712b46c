// Package analytics records how far readers get through posts without
// storing raw IP addresses.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// Read is one reading session of a post.
type Read struct {
	ID        int64     `json:"-"`
	PostID    string    `json:"post_id"`
	VisitorID string    `json:"-"`
	Depth     float64   `json:"depth"` // deepest scroll progress, 0-100
	Timestamp time.Time `json:"timestamp"`
}

// PostStat aggregates reads of a single post.
type PostStat struct {
	PostID    string  `json:"post_id"`
	Reads     int     `json:"reads"`
	AvgDepth  float64 `json:"avg_depth"`
	Completed int     `json:"completed"` // reads that reached CompletedDepth
}

// CompletedDepth is the progress at which a read counts as finished.
const CompletedDepth = 90

// GenerateVisitorID creates a salted visitor ID from IP and User-Agent.
func GenerateVisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt.value + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsBot checks if the User-Agent is likely a bot/crawler.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	bots := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"headless", "facebookexternalhit", "linkedinbot",
	}
	for _, bot := range bots {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}
