package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aretw0/scribe"
)

var (
	verbose    bool
	configPath string
	dataDir    string

	cfg *scribe.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Document store and audio backend for the scribe writing app",
	Long: `Scribe keeps writing documents as JSON files in the per-user application
data folder and drives a platform media player for background audio.
The desktop shell talks to it through "scribe serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := scribe.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		var handler slog.Handler
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			handler = slog.NewTextHandler(os.Stderr, opts)
		} else {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/scribe/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the application data directory")
}

// backendOptions wires the loaded configuration and default logger into the backend.
func backendOptions() []scribe.Option {
	opts := scribe.ConfigOptions(cfg)
	return append(opts, scribe.WithLogger(slog.Default()))
}
