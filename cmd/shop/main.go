package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/backend"
	"github.com/phonestore/storefront/internal/config"
	"github.com/phonestore/storefront/internal/repository/file"
	"github.com/phonestore/storefront/internal/session"
	"github.com/phonestore/storefront/pkg/logger"
)

// app is what every subcommand needs, built once in PersistentPreRunE
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	client   *backend.Client
	store    *file.SessionStore
	sessions *session.Manager
}

var (
	shop     = &app{}
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Terminal client for the phone storefront",
	Long: `shop searches the catalog as you type, quotes installment plans and
follows online payments from the terminal.

The backend is configured with BACKEND_BASE_URL (environment or .env).
Login state is kept in SESSION_FILE.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		log, err := logger.New("development", cfg.LogLevel)
		if err != nil {
			return err
		}

		shop.cfg = cfg
		shop.log = log
		shop.client = backend.NewClient(cfg.Backend, log, backend.WithPlaceholderImage(cfg.Search.PlaceholderImage))
		shop.store = file.NewSessionStore(cfg.Session.File)
		shop.sessions = session.NewManager(shop.store, cfg.Session.TTL, log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shop.log != nil {
			_ = shop.log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(findCmd, searchCmd, quoteCmd, payStatusCmd, loginCmd, logoutCmd)
}

// currentSession resumes the CLI session or starts a new one
func (a *app) currentSession(ctx context.Context) (*session.Session, error) {
	id, err := a.store.Current()
	if err != nil {
		return nil, err
	}
	sess, created, err := a.sessions.LoadOrBegin(ctx, id)
	if err != nil {
		return nil, err
	}
	if created {
		if err := a.store.SetCurrent(sess.ID); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
