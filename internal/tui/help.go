package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/idilsaglam/phonebook/internal/ui"
)

const helpText = `# Phonebook

Connected to ` + "`%s`" + `.

## Keys

| Key | Action |
| --- | --- |
| ` + "`tab` / `shift+tab`" + ` | cycle list, name and number |
| ` + "`a`" + ` | jump to the form |
| ` + "`enter`" + ` | next field, then save |
| ` + "`esc`" + ` | back to the list |
| ` + "`d` / `delete`" + ` | delete the selected entry |
| ` + "`/`" + ` | filter |
| ` + "`?`" + ` | toggle this screen |
| ` + "`q` / `ctrl+c`" + ` | quit |

## Notes

- The list is fetched once each time the view is shown.
- New entries appear after the server confirms them.
- Deleting an entry another client already removed still succeeds.
`

// renderHelp renders the help screen as Markdown. The raw text is returned
// if glamour fails.
func renderHelp(baseURL string, width int) string {
	md := fmt.Sprintf(helpText, baseURL)

	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if ui.Current().Name == "mono" {
		opts = append(opts, glamour.WithStandardStyle("ascii"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
