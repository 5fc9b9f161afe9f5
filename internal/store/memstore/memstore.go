// Package memstore is a process-local Store; contents are lost on exit.
package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	entries []model.Entry
}

func New(seed ...model.Entry) *Store {
	s := &Store{entries: make([]model.Entry, 0, len(seed)+16)}
	s.entries = append(s.entries, seed...)
	return s
}

func (s *Store) List(_ context.Context) ([]model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Store) Get(_ context.Context, id model.ID) (model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Entry{}, store.ErrNotFound
}

func (s *Store) Create(_ context.Context, name, number string) (model.Entry, error) {
	e := model.Entry{ID: store.NewID(), Name: name, Number: number}
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return e, nil
}

func (s *Store) Delete(_ context.Context, id model.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	s.entries = model.Without(s.entries, id)
	return len(s.entries) != n, nil
}

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
