package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/ui"
)

// exactArgs is cobra.ExactArgs with our usage line.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func lsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List entries",
		Args:  exactArgs(0, "phonebook ls"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.client()
			if err != nil {
				return err
			}
			entries, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			ui.Panel(cmd.OutOrStdout(), entryLines(entries, c.BaseURL()))
			return nil
		},
	}
}

func entryLines(entries []model.Entry, source string) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", t.Title.Render("Phonebook"), t.Accent.Render("Total"), len(entries)),
		t.Muted.Render(source),
		"",
	}
	if len(entries) == 0 {
		return append(lines, t.Muted.Render("No entries."))
	}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s%s%s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			ui.Truncate(e.Name, 60),
			t.Muted.Render(t.Sep),
			e.Number,
			t.Muted.Render("("+e.ID.String()+")"),
		))
	}
	return lines
}

func addCmd(s *session) *cobra.Command {
	const usage = "phonebook add <name> <number>"
	return &cobra.Command{
		Use:   "add <name> <number>",
		Short: "Create an entry",
		Args:  exactArgs(2, usage),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, number := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if name == "" || number == "" {
				return usagef("usage: %s", usage)
			}
			c, err := s.client()
			if err != nil {
				return err
			}
			e, err := c.Create(cmd.Context(), name, number)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s (%s)", e, e.ID))
			return nil
		},
	}
}

func rmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry by id",
		Args:  exactArgs(1, "phonebook rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(strings.TrimSpace(args[0]))
			if id == "" {
				return usagef("usage: phonebook rm <id>")
			}
			c, err := s.client()
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed "+id.String())
			return nil
		},
	}
}
