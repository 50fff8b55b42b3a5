package internal

import (
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound         = errors.New("key not found")
	ErrDuplicateRepository = errors.New("repository already added")
	ErrNotGitRepo          = errors.New("not a git repository")
	ErrOutputTooLarge      = errors.New("git output exceeds buffer limit")
	ErrUnsupportedPlatform = errors.New("unsupported git hosting platform")
	ErrInvalidRepoURL      = errors.New("cannot parse repository URL")
)

// FetchError represents a failed commit fetch for one repository, branch and author
type FetchError struct {
	Repo   string
	Branch string
	Author string
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch error [%s]", e.Repo)
	if e.Branch != "" {
		msg += fmt.Sprintf(" branch %s", e.Branch)
	}
	if e.Author != "" {
		msg += fmt.Sprintf(" author %s", e.Author)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// GitError carries the stderr of a failed git invocation
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", firstArg(e.Args), e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", firstArg(e.Args), e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// StoreError represents errors accessing the settings store
type StoreError struct {
	Backend string
	Op      string // "open", "get", "set", "delete", "keys"
	Key     string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store error [%s] %s %s: %v", e.Backend, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
