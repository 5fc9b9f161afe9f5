package directory

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/phonebook/internal/model"
)

// Collection is the remote persons collection.
type Collection interface {
	List(ctx context.Context) ([]model.Entry, error)
	Create(ctx context.Context, name, number string) (model.Entry, error)
	Delete(ctx context.Context, id model.ID) error
}

type entriesLoadedMsg struct {
	token   *Token
	entries []model.Entry
	err     error
}

type entryCreatedMsg struct {
	entry model.Entry
	err   error
}

type entryDeletedMsg struct {
	id  model.ID
	err error
}

func loadEntries(c Collection, t *Token) tea.Cmd {
	return func() tea.Msg {
		entries, err := c.List(t.Context())
		return entriesLoadedMsg{token: t, entries: entries, err: err}
	}
}

func createEntry(ctx context.Context, c Collection, name, number string) tea.Cmd {
	return func() tea.Msg {
		e, err := c.Create(ctx, name, number)
		return entryCreatedMsg{entry: e, err: err}
	}
}

func deleteEntry(ctx context.Context, c Collection, id model.ID) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{id: id, err: c.Delete(ctx, id)}
	}
}
