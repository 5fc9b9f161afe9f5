// Package tui is the full-screen shell around the directory view.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/directory"
	"github.com/idilsaglam/phonebook/internal/ui"
)

type screen int

const (
	screenDirectory screen = iota
	screenHelp
)

type app struct {
	ctx  context.Context
	deps Deps
	log  *zap.Logger

	scr    screen
	dir    directory.Model
	help string

	width, height int
}

func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newApp(ctx, deps)
	p := tea.NewProgram(wrapSafe(a, a.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newApp(ctx context.Context, deps Deps) app {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := app{ctx: ctx, deps: deps, log: log, width: 80, height: 24}
	a.dir = a.newDirectory()
	return a
}

func (a app) newDirectory() directory.Model {
	return directory.New(a.ctx, a.deps.Collection,
		directory.WithLogger(a.log.Named("directory")),
		directory.WithSize(a.innerSize().Width, a.innerSize().Height),
	)
}

// innerSize is the terminal minus the frame drawn by View.
func (a app) innerSize() tea.WindowSizeMsg {
	const frameW, frameH = 4, 2
	return tea.WindowSizeMsg{Width: max(a.width-frameW, 0), Height: max(a.height-frameH, 0)}
}

func (a app) Init() tea.Cmd {
	return a.dir.Init()
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.scr == screenHelp {
			a.help = renderHelp(a.deps.BaseURL, a.width)
			return a, nil
		}
		var cmd tea.Cmd
		a.dir, cmd = a.dir.Update(a.innerSize())
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		if a.scr == screenHelp {
			switch msg.String() {
			case "q":
				return a.quit()
			case "?", "esc":
				return a.leaveHelp()
			}
			return a, nil
		}
		if !a.dir.Typing() {
			switch msg.String() {
			case "q":
				return a.quit()
			case "?":
				return a.enterHelp()
			}
		}
	}

	if a.scr != screenDirectory {
		return a, nil
	}
	var cmd tea.Cmd
	a.dir, cmd = a.dir.Update(msg)
	return a, cmd
}

func (a app) quit() (tea.Model, tea.Cmd) {
	if a.scr == screenDirectory {
		a.dir.Unmount()
	}
	a.log.Info("tui.quit")
	return a, tea.Quit
}

func (a app) enterHelp() (tea.Model, tea.Cmd) {
	a.dir.Unmount()
	a.scr = screenHelp
	a.help = renderHelp(a.deps.BaseURL, a.width)
	return a, nil
}

func (a app) leaveHelp() (tea.Model, tea.Cmd) {
	a.scr = screenDirectory
	a.dir = a.newDirectory()
	return a, a.dir.Init()
}

func (a app) View() string {
	t := ui.Current()
	var body string
	if a.scr == screenHelp {
		body = a.help + t.Help.Render("esc back • q quit")
	} else {
		body = a.dir.View()
	}
	return t.Box().Render(body)
}
