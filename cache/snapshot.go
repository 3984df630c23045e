package cache

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot mirrors cache contents to a local file so entries survive
// restarts, the way the original dashboard kept them in browser storage.
//
// Every operation is best-effort: quota, permission and serialization
// failures are logged and otherwise treated as a cache miss.
type Snapshot struct {
	path string
	mu   sync.Mutex
}

// NewSnapshot creates a snapshot bound to the given file path
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Load reads the persisted entries. Any failure returns an empty map.
func (s *Snapshot) Load() map[string]Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Cache: snapshot read failed, starting empty: %v", err)
		}
		return map[string]Entry{}
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("Cache: snapshot corrupt, starting empty: %v", err)
		return map[string]Entry{}
	}
	return entries
}

// Store writes the full entry set atomically via a temp file rename
func (s *Snapshot) Store(entries map[string]Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Cache: snapshot marshal failed: %v", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("Cache: snapshot dir create failed: %v", err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("Cache: snapshot write failed: %v", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		log.Printf("Cache: snapshot rename failed: %v", err)
	}
}
