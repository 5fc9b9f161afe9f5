package directory

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/ui"
)

// entryItem adapts model.Entry to list.Item.
type entryItem struct {
	model.Entry
}

func (i entryItem) FilterValue() string { return i.Name + " " + i.Number }

// entryDelegate renders one entry per line.
type entryDelegate struct{}

func (d entryDelegate) Height() int                               { return 1 }
func (d entryDelegate) Spacing() int                              { return 0 }
func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(entryItem)
	if !ok {
		return
	}
	t := ui.Current()
	line := ui.Truncate(it.Name, 60) + t.Muted.Render(t.Sep) + it.Number

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
	}
	fmt.Fprint(w, prefix+line)
}

func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("Phonebook"))
	b.WriteString("\n\n")

	b.WriteString(t.Accent.Render("Add new"))
	b.WriteString("\n")
	b.WriteString(m.label("Name", focusName) + m.name.View() + "\n")
	b.WriteString(m.label("Number", focusNumber) + m.number.View() + "\n")
	if m.formErr != "" {
		b.WriteString(t.Muted.Render(m.formErr) + "\n")
	}
	if m.err != "" {
		b.WriteString(t.Error.Render(m.err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(t.Accent.Render("Numbers"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spin.View() + " Loading…\n")
	case len(m.entries) == 0:
		b.WriteString(t.Muted.Render("No entries.") + "\n")
	default:
		b.WriteString(m.list.View() + "\n")
	}

	b.WriteString("\n")
	if m.focus == focusList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(formKeys(m.keys)))
	}
	return b.String()
}

func (m Model) label(text string, f focusArea) string {
	t := ui.Current()
	s := fmt.Sprintf("%-8s", text)
	if m.focus == f {
		return t.Selected.Render(t.Cursor) + s
	}
	return "  " + t.Muted.Render(s)
}
