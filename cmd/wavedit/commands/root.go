// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/wavedit/internal/config"
)

var (
	// Global flags
	verbose    bool
	configFile string

	// Loaded on first use
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wavedit",
	Short: "Inspect, trim, play and export audio files",
	Long: `wavedit - a waveform editor for the command line.

Reads WAV, MP3, Ogg Vorbis and AIFF. Writes 16-bit PCM WAV.

Times are given in seconds. A range is selected with --start and --end;
without one the whole file is used.

Configuration is read from the OS config directory:
  macOS:   ~/Library/Application Support/wavedit/config.yaml
  Linux:   ~/.config/wavedit/config.yaml
  Windows: %AppData%/wavedit/config.yaml

Examples:
  wavedit info take.wav
  wavedit peaks take.wav --zoom 4 --at 12.5
  wavedit trim take.wav short.wav --start 1.2 --end 3.75
  wavedit export take.mp3 clip.wav --start 10 --end 20 --mono --rate 16000
  wavedit play take.ogg --start 5 --end 9 --loop --speed 0.5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is the OS config directory)")
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// ConfigPath returns --config or the default location.
func ConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.Path()
}

// GetConfig returns the loaded configuration, defaults when no file exists.
func GetConfig() (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	path, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("config not available: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config not available: %w", err)
	}
	globalConfig = cfg

	return cfg, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
