package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every write rewrites the whole file; fine for a small phonebook.

// DefaultFileName is used when the configured path is a directory.
const DefaultFileName = "persons.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Store struct {
	mu   sync.Mutex
	path string
}

// Open prepares a store at path. A directory path gets DefaultFileName
// appended; the file itself is created on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = wd
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	s := &Store{path: path}
	// Fail early on an unreadable or corrupt file.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]model.Entry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Entry{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var entries []model.Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

func (s *Store) save(entries []model.Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Get(_ context.Context, id model.ID) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return model.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Entry{}, store.ErrNotFound
}

func (s *Store) Create(_ context.Context, name, number string) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return model.Entry{}, err
	}
	e := model.Entry{ID: store.NewID(), Name: name, Number: number}
	if err := s.save(append(entries, e)); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

func (s *Store) Delete(_ context.Context, id model.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return false, err
	}
	kept := model.Without(entries, id)
	if len(kept) == len(entries) {
		return false, nil
	}
	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
