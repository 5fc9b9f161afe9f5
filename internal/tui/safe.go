package tui

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/ui"
)

const panicNotice = "Unexpected error (see logs)"

// safeModel keeps a panic in Update or View from leaving the terminal in
// raw mode. After a panic in Update the previous state stays on screen.
type safeModel struct {
	m      tea.Model
	log    *zap.Logger
	notice string
}

func wrapSafe(m tea.Model, log *zap.Logger) safeModel {
	if log == nil {
		log = zap.NewNop()
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				zap.String("where", "tui.update"),
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
			)
			s.notice = panicNotice
			tm = s
			cmd = nil
		}
	}()

	if _, ok := msg.(tea.KeyMsg); ok {
		s.notice = ""
	}
	s.m, cmd = s.m.Update(msg)
	return s, cmd
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				zap.String("where", "tui.view"),
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
			)
			out = panicNotice
		}
	}()
	out = s.m.View()
	if s.notice != "" {
		out = ui.Current().Error.Render(s.notice) + "\n" + out
	}
	return out
}

var _ tea.Model = safeModel{}
