// Package cli wires configuration, logging and the API client into the
// phonebook command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/api"
	"github.com/idilsaglam/phonebook/internal/config"
	"github.com/idilsaglam/phonebook/internal/logging"
	"github.com/idilsaglam/phonebook/internal/tui"
	"github.com/idilsaglam/phonebook/internal/ui"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError is reported with exit code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr, os.Getenv)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	s := &session{getenv: getenv}
	defer s.close()

	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}

// session is what every command shares once flags are parsed.
type session struct {
	getenv func(string) string

	configPath string
	url, theme string
	debug      bool

	cfg     config.Config
	log     *zap.Logger
	cleanup func() error
}

func (s *session) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
	}
}

// setup resolves settings: defaults, then the file, then the environment,
// then flags.
func (s *session) setup(cmd *cobra.Command, toStderr bool) error {
	path := s.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(s.getenv)

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.API.BaseURL = s.url
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = s.theme
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = s.debug
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}
	s.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)

	log, cleanup, err := logging.Setup(logging.Config{
		Path:   cfg.Log.Path,
		Debug:  cfg.Log.Debug,
		Stderr: toStderr,
	})
	if err != nil {
		return err
	}
	s.log, s.cleanup = log, cleanup
	s.log.Debug("config.loaded",
		zap.String("path", path),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("theme", cfg.UI.Theme),
	)
	return nil
}

func (s *session) client() (*api.Client, error) {
	tc := api.DefaultTransportConfig()
	tc.Timeout = s.cfg.API.Timeout
	return api.New(s.cfg.API.BaseURL,
		api.WithHTTPClient(api.NewHTTPClient(tc)),
		api.WithLogger(s.log.Named("api")),
	)
}

func newRootCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "phonebook",
		Short:         "Phonebook — browse and edit a remote persons collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q (see phonebook --help)", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd, cmd.Name() == "serve")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.client()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Deps{
				Collection: c,
				BaseURL:    c.BaseURL(),
				Logger:     s.log.Named("tui"),
				Debug:      s.cfg.Log.Debug,
			})
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "config file (default ~/.phonebook/config.yaml)")
	pf.StringVar(&s.url, "url", "", "base URL of the persons API (env "+config.EnvURL+")")
	pf.StringVar(&s.theme, "theme", "", "classic, neon or mono (env "+config.EnvTheme+")")
	pf.BoolVar(&s.debug, "debug", false, "verbose logging to the log file")

	cmd.AddCommand(lsCmd(s), addCmd(s), rmCmd(s), serveCmd(s))
	return cmd
}
