package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence boundary the engine writes through. Values must
// be JSON-serializable; nothing beyond what JSON preserves survives a round
// trip. Get fills out with the value stored under key, or, on first access,
// with the factory default which is persisted immediately. Set replaces the
// whole value under key. Writes are best-effort: a failed Set is reported
// once and never retried.
type Store interface {
	Get(key string, out any, factory func() any) error
	Set(key string, value any) error
}

// FileStore keeps the entire key space as one JSON document on disk. The
// document is loaded once on open and flushed on every write, so the file is
// always a full snapshot. Single-process use only; there is no cross-key
// atomicity.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	data map[string]json.RawMessage
}

func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	s := &FileStore{file: f, data: map[string]json.RawMessage{}}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Close() error { return s.file.Close() }

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	dec := json.NewDecoder(s.file)
	if err := dec.Decode(&s.data); err != nil {
		return fmt.Errorf("corrupt data file: %w", err)
	}
	return nil
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.data); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *FileStore) Get(key string, out any, factory func() any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		def, err := json.Marshal(factory())
		if err != nil {
			return err
		}
		s.data[key] = def
		if err := s.flushLocked(); err != nil {
			return err
		}
		raw = def
	}
	return json.Unmarshal(raw, out)
}

func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return s.flushLocked()
}
