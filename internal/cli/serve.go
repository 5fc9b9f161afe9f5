package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/config"
	"github.com/idilsaglam/phonebook/internal/server"
	"github.com/idilsaglam/phonebook/internal/store"
	"github.com/idilsaglam/phonebook/internal/store/jsonstore"
	"github.com/idilsaglam/phonebook/internal/store/memstore"
	"github.com/idilsaglam/phonebook/internal/store/sqlitestore"
)

func serveCmd(s *session) *cobra.Command {
	var addr, kind, data string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a persons API server",
		Args:  exactArgs(0, "phonebook serve [--addr :3001] [--store memory|json|sqlite] [--data path]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := s.cfg.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}
			if cmd.Flags().Changed("store") {
				sc.Store = kind
			}
			if cmd.Flags().Changed("data") {
				sc.Data = data
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := openStore(ctx, sc)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					s.log.Warn("store.close.failed", zap.Error(err))
				}
			}()
			s.log.Info("store.opened", zap.String("kind", sc.Store), zap.String("data", sc.Data))

			return server.New(sc.Addr, st, s.log.Named("server")).ListenAndServe(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default from config, :3001)")
	f.StringVar(&kind, "store", "", "memory, json or sqlite")
	f.StringVar(&data, "data", "", "json file or sqlite database path")
	return cmd
}

func openStore(ctx context.Context, sc config.Server) (store.Store, error) {
	switch sc.Store {
	case "memory":
		return memstore.New(), nil
	case "json":
		st, err := jsonstore.Open(sc.Data)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return st, nil
	case "sqlite":
		st, err := sqlitestore.Open(ctx, sc.Data)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	}
	return nil, usagef("unknown store %q (memory, json or sqlite)", sc.Store)
}
