package repositories

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// FileDedupStore keeps the set of already-posted product keys in memory,
// backed by a newline-delimited file. The file is append-only: keys are never
// updated or deleted. The in-memory set is always a superset of the file, so
// a failed append can at worst cause one duplicate after a crash, never a
// false-positive suppression.
type FileDedupStore struct {
	path string

	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewFileDedupStore loads every non-empty line of the file into the in-memory
// set. A missing file is not an error; it is an empty initial set.
func NewFileDedupStore(path string) (*FileDedupStore, error) {
	s := &FileDedupStore{
		path: path,
		keys: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to open posted-keys file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			s.keys[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posted-keys file %s: %w", path, err)
	}

	log.Printf("Loaded %d posted keys from %s", len(s.keys), path)
	return s, nil
}

func (s *FileDedupStore) Contains(_ context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Record adds the key to the in-memory set and appends it to the file. An
// append failure is logged and does not roll back the in-memory addition.
func (s *FileDedupStore) Record(_ context.Context, key string) {
	s.mu.Lock()
	if _, ok := s.keys[key]; ok {
		s.mu.Unlock()
		return
	}
	s.keys[key] = struct{}{}
	s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to persist key %q: %v", key, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(key + "\n"); err != nil {
		log.Printf("failed to persist key %q: %v", key, err)
	}
}

// Len reports the number of known keys.
func (s *FileDedupStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
