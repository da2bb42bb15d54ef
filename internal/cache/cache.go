// Package cache stores JSON-encoded responses on the virtual filesystem with a modification-time TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/simud-cli/simud/filesystem"
)

// Store is a directory of cache entries sharing one lifetime.
type Store struct {
	Dir string
	TTL time.Duration
}

// New returns a store rooted at dir.
func New(dir string, ttl time.Duration) *Store {
	return &Store{Dir: dir, TTL: ttl}
}

// GenerateKey derives a deterministic identifier from a query and a namespace such as the origin.
// Queries differing only in case or surrounding space share a key.
func GenerateKey(query, namespace string) string {
	sanitized := strings.ToLower(strings.TrimSpace(query)) + "\x00" + namespace
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry into target if it exists and has not expired.
func (s *Store) Read(key string, target any) bool {
	path := filepath.Join(s.Dir, key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > s.TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write persists the entry atomically.
func (s *Store) Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	return filesystem.WriteAtomic(filepath.Join(s.Dir, key), encoded)
}

// CollectGarbage removes expired entries and reports how many were deleted.
func (s *Store) CollectGarbage() (removed int) {
	api := filesystem.API()
	_ = api.Walk(s.Dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > s.TTL && api.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed
}
