package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const fileStoreVersion = "1.0"

// FileStore keeps settings in a YAML document on disk. Every write rewrites the file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// fileStoreDocument is the on-disk layout of a FileStore
type fileStoreDocument struct {
	Version   string            `yaml:"version"`
	UpdatedAt time.Time         `yaml:"updated_at"`
	Values    map[string]string `yaml:"values"`
}

// NewFileStore creates a store backed by the YAML file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the YAML file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (*fileStoreDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileStoreDocument{Version: fileStoreVersion, Values: make(map[string]string)}, nil
	}
	if err != nil {
		return nil, err
	}

	var doc fileStoreDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", s.path, err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	return &doc, nil
}

func (s *FileStore) save(doc *fileStoreDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	doc.Version = fileStoreVersion
	doc.UpdatedAt = time.Now()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// settings may hold an API key
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", &StoreError{Backend: "file", Op: "get", Key: key, Err: err}
	}
	v, ok := doc.Values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	return s.update("set", key, func(values map[string]string) {
		values[key] = value
	})
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	return s.update("delete", key, func(values map[string]string) {
		delete(values, key)
	})
}

func (s *FileStore) update(op, key string, fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return &StoreError{Backend: "file", Op: op, Key: key, Err: err}
	}
	fn(doc.Values)
	if err := s.save(doc); err != nil {
		return &StoreError{Backend: "file", Op: op, Key: key, Err: err}
	}
	return nil
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, &StoreError{Backend: "file", Op: "keys", Err: err}
	}
	keys := make([]string, 0, len(doc.Values))
	for k := range doc.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; the file is only open during individual operations
func (s *FileStore) Close() error {
	return nil
}

// Clear removes the settings file
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StoreError{Backend: "file", Op: "delete", Err: err}
	}
	return nil
}
