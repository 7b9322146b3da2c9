package cmd

import (
	"errors"
	"os"

	"github.com/kerbaras/anitrack/pkg/app"
	"github.com/kerbaras/anitrack/pkg/app/screens"
	"github.com/kerbaras/anitrack/pkg/auth"
	"github.com/kerbaras/anitrack/pkg/config"
	"github.com/kerbaras/anitrack/pkg/integrations"
	"github.com/kerbaras/anitrack/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "anitrack",
	Short:         "A password-protected anime watchlist",
	Long:          "Track the anime you watch, episode by episode, with a TUI and CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		// The TUI owns the terminal, so it always logs to the file.
		// Subcommands log to stderr when asked to be verbose.
		logFile := cfg.Log.File
		if verbose && cmd != cmd.Root() {
			logFile = ""
		}
		l, err := logging.New(logging.Options{Level: cfg.Log.Level, File: logFile, Verbose: verbose})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI by default
		deps := screens.Deps{
			Gate:   auth.NewGate(cfg.Password),
			Covers: integrations.NewCoverRenderer(integrations.DefaultCoverSettings(), logger),
			Logger: logger,
		}

		controller, err := newController(cmd.Context())
		switch {
		case errors.Is(err, config.ErrStoreNotConfigured), errors.Is(err, config.ErrUnknownBackend):
			logger.Warn("store not configured", zap.Error(err))
			deps.ConfigErr = err
		case err != nil:
			return err
		default:
			defer controller.Close()
			deps.Controller = controller
		}

		return app.NewApp(deps).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
