// Package directory is the phonebook view: it loads the collection once
// per mount, appends server-confirmed creates and filters out confirmed
// deletes.
package directory

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/model"
)

type focusArea int

const (
	focusList focusArea = iota
	focusName
	focusNumber
)

func (f focusArea) next() focusArea { return (f + 1) % 3 }
func (f focusArea) prev() focusArea { return (f + 2) % 3 }

const requiredHint = "Name and number are required"

// Model is one mounted directory view. Build it with New, start it with
// Init and call Unmount when it leaves the screen.
type Model struct {
	// ctx scopes create and delete; the initial load uses token instead.
	ctx   context.Context
	api   Collection
	log   *zap.Logger
	token *Token

	entries []model.Entry
	loading bool
	err     string
	formErr string

	focus  focusArea
	name   textinput.Model
	number textinput.Model
	list   list.Model
	spin   spinner.Model
	help   help.Model
	keys   keyMap
}

type Option func(*Model)

func WithLogger(log *zap.Logger) Option {
	return func(m *Model) { m.log = log }
}

// WithSize sets the initial list size; a tea.WindowSizeMsg overrides it.
func WithSize(width, height int) Option {
	return func(m *Model) { m.setSize(width, height) }
}

// New mounts a view over c. The list starts empty and loading.
func New(ctx context.Context, c Collection, opts ...Option) Model {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Arto Hellas"
	name.CharLimit = 120

	number := textinput.New()
	number.Prompt = ""
	number.Placeholder = "040-123456"
	number.CharLimit = 40

	l := list.New(nil, entryDelegate{}, 60, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.SetStatusBarItemName("entry", "entries")

	m := Model{
		ctx:     ctx,
		api:     c,
		log:     zap.NewNop(),
		token:   NewToken(ctx),
		entries: []model.Entry{},
		loading: true,
		name:    name,
		number:  number,
		list:    l,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    defaultKeys(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the initial load. Only the first call per mount does anything.
func (m Model) Init() tea.Cmd {
	if !m.token.start() {
		return nil
	}
	m.log.Debug("directory.load.start")
	return tea.Batch(m.spin.Tick, loadEntries(m.api, m.token))
}

// Unmount cancels the initial load. A load result arriving later is dropped.
func (m Model) Unmount() {
	m.token.Cancel()
}

// Entries returns a copy of the current list.
func (m Model) Entries() []model.Entry { return slices.Clone(m.entries) }

func (m Model) Loading() bool { return m.loading }

// Err is the message of the last failed operation, or "".
func (m Model) Err() string { return m.err }

// Form returns the current input values.
func (m Model) Form() (name, number string) { return m.name.Value(), m.number.Value() }

// Typing reports whether keys go to a text field, so the caller must not
// treat them as global shortcuts.
func (m Model) Typing() bool {
	return m.focus != focusList || m.list.FilterState() == list.Filtering
}

// Create sends a new entry. The form is cleared only once the server
// confirms.
func (m Model) Create(name, number string) (Model, tea.Cmd) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if name == "" || number == "" {
		m.formErr = requiredHint
		return m, nil
	}
	m.formErr = ""
	m.err = ""
	m.log.Debug("directory.create.start", zap.String("name", name))
	return m, createEntry(m.ctx, m.api, name, number)
}

// Delete asks the server to remove id. Presence in the list is not checked.
func (m Model) Delete(id model.ID) (Model, tea.Cmd) {
	m.err = ""
	m.log.Debug("directory.delete.start", zap.String("id", id.String()))
	return m, deleteEntry(m.ctx, m.api, id)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case entriesLoadedMsg:
		return m.applyLoad(msg)

	case entryCreatedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.log.Warn("directory.create.failed", zap.Error(msg.err))
			return m, nil
		}
		m.entries = append(slices.Clip(m.entries), msg.entry)
		m.name.SetValue("")
		m.number.SetValue("")
		m.log.Info("directory.created", zap.String("id", msg.entry.ID.String()))
		return m, m.syncList()

	case entryDeletedMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.log.Warn("directory.delete.failed", zap.String("id", msg.id.String()), zap.Error(msg.err))
			return m, nil
		}
		m.entries = model.Without(m.entries, msg.id)
		m.log.Info("directory.deleted", zap.String("id", msg.id.String()))
		return m, m.syncList()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) applyLoad(msg entriesLoadedMsg) (Model, tea.Cmd) {
	if msg.token != m.token || msg.token.Cancelled() {
		m.log.Debug("directory.load.discarded")
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.err = msg.err.Error()
		m.log.Warn("directory.load.failed", zap.Error(msg.err))
		return m, nil
	}
	m.entries = msg.entries
	m.log.Info("directory.loaded", zap.Int("count", len(msg.entries)))
	return m, m.syncList()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus.next())
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus.prev())
	}

	if m.focus == focusList {
		switch {
		case key.Matches(msg, m.keys.Delete):
			it, ok := m.list.SelectedItem().(entryItem)
			if !ok {
				return m, nil
			}
			return m.Delete(it.ID)
		case key.Matches(msg, m.keys.Add):
			return m, m.setFocus(focusName)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusName {
			return m, m.setFocus(focusNumber)
		}
		return m.Create(m.name.Value(), m.number.Value())
	}

	var cmd tea.Cmd
	if m.focus == focusName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.number, cmd = m.number.Update(msg)
	}
	m.formErr = ""
	return m, cmd
}

// forward hands everything else (cursor blinks, filter results) to the
// children that may be waiting for it.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		cmds = append(cmds, cmd)
	case focusNumber:
		m.number, cmd = m.number.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.number.Blur()
	switch f {
	case focusName:
		return m.name.Focus()
	case focusNumber:
		return m.number.Focus()
	}
	return nil
}

func (m *Model) setSize(width, height int) {
	// Header, form, messages and help take roughly this many lines.
	const chrome = 12
	h := height - chrome
	if h < 3 {
		h = 3
	}
	m.list.SetSize(width, h)
	m.help.Width = width
	if width > 20 {
		m.name.Width = width - 12
		m.number.Width = width - 12
	}
}

func (m *Model) syncList() tea.Cmd {
	items := make([]list.Item, 0, len(m.entries))
	for _, e := range m.entries {
		items = append(items, entryItem{e})
	}
	return m.list.SetItems(items)
}
