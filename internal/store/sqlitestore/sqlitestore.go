// Package sqlitestore keeps the persons collection in a SQLite database
// through sqlx and the pure-Go modernc driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS persons (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	number TEXT NOT NULL
)`

type row struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Number string `db:"number"`
}

func (r row) entry() model.Entry {
	return model.Entry{ID: model.ID(r.ID), Name: r.Name, Number: r.Number}
}

type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed creates) the database at dsn. Use ":memory:"
// for a throwaway database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]model.Entry, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, name, number FROM persons ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("select persons: %w", err)
	}
	out := make([]model.Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry())
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Entry, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT id, name, number FROM persons WHERE id = ?`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, store.ErrNotFound
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("select person: %w", err)
	}
	return r.entry(), nil
}

func (s *Store) Create(ctx context.Context, name, number string) (model.Entry, error) {
	r := row{ID: store.NewID().String(), Name: name, Number: number}
	if _, err := s.db.NamedExecContext(ctx,
		`INSERT INTO persons (id, name, number) VALUES (:id, :name, :number)`, r); err != nil {
		return model.Entry{}, fmt.Errorf("insert person: %w", err)
	}
	return r.entry(), nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Close() error { return s.db.Close() }

var _ store.Store = (*Store)(nil)
