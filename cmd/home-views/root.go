package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/config"
	"github.com/GriffinCanCode/hildon-home/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hildon-home/internal/store"
)

type rootFlags struct {
	backend   string
	storePath string
	current   string
	fallback  string
	debug     bool
}

// app holds what every subcommand needs once flags are parsed
type app struct {
	logger *logging.Logger
	store  store.Backend
	views  *views.Service
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)

	cmd := &cobra.Command{
		Use:   "home-views",
		Short: "Inspect and change the active home views",
		Long:  "home-views reads and writes the set of active desktop home views and shows which background each view resolves to.",
		Example: `  home-views show
  home-views set 1 3
  home-views pick`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.backend, "backend", "", "store backend: file, sqlite or memory (default from HOME_STORE_BACKEND)")
	pf.StringVar(&flags.storePath, "store", "", "store location (default from HOME_STORE_PATH)")
	pf.StringVar(&flags.current, "current-theme", "", "current theme background descriptor")
	pf.StringVar(&flags.fallback, "default-theme", "", "default theme background descriptor")
	pf.BoolVar(&flags.debug, "debug", false, "log diagnostics to stderr")

	cmd.AddCommand(newShowCmd(&a))
	cmd.AddCommand(newSetCmd(&a))
	cmd.AddCommand(newPickCmd(&a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.backend != "" && flags.backend != cfg.Store.Backend {
		cfg.Store.Backend = flags.backend
		if flags.storePath == "" {
			cfg.Store.Path = ""
		}
	}
	if flags.storePath != "" {
		cfg.Store.Path = flags.storePath
	}
	if flags.current != "" {
		cfg.Theme.Current = flags.current
	}
	if flags.fallback != "" {
		cfg.Theme.Default = flags.fallback
	}
	if err := cfg.Finalize(); err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = "error"
	if flags.debug {
		logCfg = logging.DevelopmentConfig()
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		logger = logging.NewNop()
	}
	a.logger = logger

	backend, err := store.Open(cmd.Context(), cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = backend
	a.logger.Debug("Opened views store", zap.String("backend", cfg.Store.Backend), zap.String("path", cfg.Store.Path))

	a.views = views.NewService(views.ServiceConfig{
		Store:        backend,
		CurrentTheme: cfg.Theme.Current,
		DefaultTheme: cfg.Theme.Default,
		Logger:       logger.Component("views"),
	})
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
