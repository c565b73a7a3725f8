package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justchokingaround/yt-tui/internal/clipboard"
	"github.com/justchokingaround/yt-tui/internal/config"
	"github.com/justchokingaround/yt-tui/internal/database"
	"github.com/justchokingaround/yt-tui/internal/history"
	"github.com/justchokingaround/yt-tui/internal/player"
	"github.com/justchokingaround/yt-tui/internal/tui"
	"github.com/justchokingaround/yt-tui/internal/youtube"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
	// Global flags
	cfgFile     string
	logLevel    string
	noColor     bool
	debugMode   bool
	hideWatched bool

	// Global config and logger
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "yt-tui",
	Short: "A terminal dashboard for YouTube",
	Long: `yt-tui lists your YouTube feed in the terminal, lets you search, filter
and sort it, remembers what you have watched and plays videos in mpv.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that work without it
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" && cmd.Name() != "show" {
			return nil
		}
		if cmd.Name() == "version" {
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var err error
		cfg, _, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if debugMode && logLevel == "" {
			cfg.Logging.Level = "debug"
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if noColor {
			cfg.Logging.Color = false
		}
		if cmd.Flags().Changed("hide-watched") {
			cfg.HideWatched = hideWatched
		}

		logger, err = config.InitLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if database.DB == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("yt-tui starting...", "version", version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		settings := database.NewSettingsStore(database.DB)

		source, err := youtube.NewFromConfig(ctx, cfg, settings, debugMode, logger)
		if err != nil {
			return err
		}

		historyService, err := openHistory()
		if err != nil {
			return err
		}

		return tui.Start(tui.Options{
			Context:     ctx,
			Source:      source,
			History:     historyService,
			Player:      player.NewLauncher(&cfg.Player, logger, debugMode),
			Clipboard:   clipboard.NewService(cfg.Clipboard.Command, logger),
			Settings:    settings,
			Filters:     cfg.DefaultFilters.Criteria(),
			HideWatched: cfg.HideWatched,
			MaxResults:  cfg.MaxResults,
			Logger:      logger,
		})
	},
}

// openHistory creates the history service and imports the legacy JSON
// history the first time it finds an empty database
func openHistory() (*history.Service, error) {
	svc, err := history.NewService(database.DB, logger)
	if err != nil {
		return nil, err
	}

	if cfg.HistoryPath == "" || svc.Count() > 0 {
		return svc, nil
	}
	if _, err := os.Stat(cfg.HistoryPath); errors.Is(err, fs.ErrNotExist) {
		return svc, nil
	}

	if n, err := svc.ImportLegacy(cfg.HistoryPath); err != nil {
		logger.Warn("failed to import legacy history", "path", cfg.HistoryPath, "error", err)
	} else if n > 0 {
		logger.Info("imported legacy history", "path", cfg.HistoryPath, "count", n)
	}
	return svc, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/yt-tui/config.jsonc)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode (verbose HTTP logging, skip playback)")
	rootCmd.PersistentFlags().BoolVar(&hideWatched, "hide-watched", false, "hide watched videos (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yt-tui version %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
