// Package store defines persistence for the reference persons server.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/idilsaglam/phonebook/internal/model"
)

// ErrNotFound is returned by Get when no entry has the requested id.
var ErrNotFound = errors.New("entry not found")

// Store keeps the persons collection. Implementations preserve insertion
// order and assign ids on Create.
type Store interface {
	List(ctx context.Context) ([]model.Entry, error)
	Get(ctx context.Context, id model.ID) (model.Entry, error)
	Create(ctx context.Context, name, number string) (model.Entry, error)
	// Delete reports whether an entry was removed.
	Delete(ctx context.Context, id model.ID) (bool, error)
	Close() error
}

// NewID returns a fresh entry id.
func NewID() model.ID { return model.ID(uuid.NewString()) }
