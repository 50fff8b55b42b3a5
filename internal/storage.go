package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is the key-value persistence used for settings and repository history.
// Only small string values are stored; commits and reports never are.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// StoreConfig selects and configures a Store backend
type StoreConfig struct {
	Backend     string `mapstructure:"backend"` // file, sqlite, redis, memory
	Path        string `mapstructure:"path"`    // file and sqlite backends
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisDB     int    `mapstructure:"redis_db"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// DefaultStoreDir returns the directory holding local settings
func DefaultStoreDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".git-weekly"), nil
}

// OpenStore opens the configured backend
func OpenStore(cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		path := cfg.Path
		if path == "" {
			dir, err := DefaultStoreDir()
			if err != nil {
				return nil, &StoreError{Backend: "file", Op: "open", Err: err}
			}
			path = filepath.Join(dir, "settings.yaml")
		}
		return NewFileStore(path), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			dir, err := DefaultStoreDir()
			if err != nil {
				return nil, &StoreError{Backend: "sqlite", Op: "open", Err: err}
			}
			path = filepath.Join(dir, "settings.db")
		}
		return OpenSQLiteStore(path)
	case "redis":
		return OpenRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, &StoreError{Backend: cfg.Backend, Op: "open", Err: fmt.Errorf("unsupported store backend (supported: file, sqlite, redis, memory)")}
	}
}

// MemoryStore keeps values in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
