// Package storage provides durable key-value storage for footy.
//
// The default backend keeps one file per key under a .footy/ directory,
// the local equivalent of browser storage scoped to one application.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// footyDir is the name of the footy directory.
	footyDir = ".footy"
	// storeDir is the subdirectory holding one file per key.
	storeDir = "store"
	// configFile is the name of the storage config file within .footy/.
	configFile = "config.yaml"
	// valueSuffix is appended to key names on disk.
	valueSuffix = ".json"
)

// keyRegex restricts keys to names that are safe as file names.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)

// Backend is a durable string key-value store.
// Get reports ok=false for a missing key. Remove of a missing key is not an error.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// StorageConfig contains settings stored in .footy/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .footy/ directory.
type Storage struct {
	root string // path to directory containing .footy/
}

var _ Backend = (*Storage)(nil)

// Open returns a Storage for the given directory.
// Returns error if .footy/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, footyDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".footy/ directory not found in %s (run `footy init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .footy/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".footy is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .footy/ directory.
// Returns error if .footy/ already exists.
func Init(dir string) (*Storage, error) {
	path := filepath.Join(dir, footyDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".footy/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .footy/: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(path, storeDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .footy/store/: %w", err)
	}

	cfgData, err := yaml.Marshal(&StorageConfig{Version: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .footy/.
func (s *Storage) Root() string {
	return s.root
}

// FootyPath returns the path to the .footy/ directory.
func (s *Storage) FootyPath() string {
	return filepath.Join(s.root, footyDir)
}

func (s *Storage) keyPath(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, footyDir, storeDir, key+valueSuffix), nil
}

// Get reads the value stored at key.
func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set overwrites the value at key.
// The value is written to a temporary file and renamed into place so a
// crash never leaves a half-written value behind.
func (s *Storage) Set(_ context.Context, key, value string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value at key.
func (s *Storage) Remove(_ context.Context, key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Storage) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, footyDir, storeDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, valueSuffix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, valueSuffix))
	}
	sort.Strings(keys)
	return keys, nil
}
