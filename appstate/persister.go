package appstate

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
)

// ErrNotFound indicates the persister has no value for a key
var ErrNotFound = errors.New("no persisted value")

// Persister is the durable key/value binding behind the state store.
// Implementations are expected to be best-effort: a failed save leaves
// the in-memory state authoritative.
type Persister interface {
	Save(key string, value any) error
	Load(key string, dest any) error
}

// FilePersister keeps all state keys in a single JSON file, loaded once
// at construction and rewritten on every save
type FilePersister struct {
	path   string
	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewFilePersister creates a persister bound to path, loading whatever
// was saved previously. A missing or corrupt file starts empty.
func NewFilePersister(path string) *FilePersister {
	p := &FilePersister{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("State: persisted state unreadable, starting fresh: %v", err)
		}
		return p
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		log.Printf("State: persisted state corrupt, starting fresh: %v", err)
		p.values = make(map[string]json.RawMessage)
	}
	return p
}

// Save stores value under key and rewrites the backing file
func (p *FilePersister) Save(key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.values[key] = raw

	data, err := json.Marshal(p.values)
	if err != nil {
		return err
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// Load reads the value stored under key into dest
func (p *FilePersister) Load(key string, dest any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, ok := p.values[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}
