//go:build !avr

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"blinkytree-go/services/config"
	"blinkytree-go/services/songs"
)

var (
	cfg       config.Config
	lib       *songs.Table
	cfgFile   string
	preset    string
	songsFile string
	verbose   int
)

var rootCmd = &cobra.Command{
	Use:   "treesim",
	Short: "Simulate the breath-reactive tree in virtual time",
	Long: `treesim runs the tree firmware on a simulated board. Microphone input
comes from a stimulus script; buzzer output can be rendered to a WAV file.

Configuration is read from --config (YAML) with BLINKYTREE_* environment
overrides, e.g. BLINKYTREE_EFFECT=breathing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)

		var err error
		cfg, err = config.Load(cfgFile, preset)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		slog.Debug("config loaded", "board", cfg.Board, "effect", cfg.Effect, "rotation", cfg.Rotation)

		lib, err = loadSongs(songsFile, cfg.SongsFile)
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "device config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "built-in preset: debug, production, production-old, quiet, showcase")
	rootCmd.PersistentFlags().StringVar(&songsFile, "songs", "", "song file (overrides songs_file from config)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "verbose output (repeat for more)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(songsCmd)
	rootCmd.AddCommand(configCmd)
}

func loadSongs(flagPath, cfgPath string) (*songs.Table, error) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	base := songs.Builtin()
	if path == "" {
		return base, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := songs.LoadConfig(f, base)
	if err != nil {
		return nil, err
	}
	slog.Debug("songs loaded", "path", path, "enabled", len(t.Enabled()))
	return t, nil
}

// setupLogging maps -v counts onto slog levels.
func setupLogging(level int) {
	l := slog.LevelWarn
	switch {
	case level >= 2:
		l = slog.LevelDebug
	case level == 1:
		l = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(h))
}
