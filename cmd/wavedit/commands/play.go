// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ik5/wavedit/device"
	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/playback"
)

var (
	playRange     rangeFlags
	playLoop      bool
	playSpeed     float64
	playVolume    float64
	playFilter    string
	playFrequency float64
	playQ         float64
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a file or a range of it",
	Long: `Play through the default output device until the end of the file or
range, or until interrupted. With --loop the range repeats until Ctrl-C.

Filters: none, lowpass, highpass, bandpass, notch, lowshelf, highshelf,
peaking, allpass.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		tick, err := cfg.TickInterval()
		if err != nil {
			return err
		}

		rate, err := device.DefaultSampleRate()
		if err != nil {
			return err
		}
		engine, err := playback.NewEngine(rate, 2, slog.Default())
		if err != nil {
			return err
		}
		defer engine.Close()

		s, err := openSession(cmd, args[0], engine)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := applyPlayFlags(cmd, s); err != nil {
			return err
		}
		if err := playRange.apply(cmd, s); err != nil {
			return err
		}

		if err := engine.Open(&device.Output{}); err != nil {
			return err
		}
		if err := s.Play(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		out := cmd.OutOrStdout()
		err = s.Run(ctx, tick, func(f editor.Frame) {
			fmt.Fprintf(out, "\r%s / %s  %-7s", f.TimeText, f.DurationText, f.State)
			if f.State != editor.Playing {
				cancel()
			}
		})
		fmt.Fprintln(out)

		if ctx.Err() != nil && cmd.Context().Err() == nil {
			return nil
		}
		return err
	},
}

// applyPlayFlags overrides the configured playback params with the flags
// given on the command line.
func applyPlayFlags(cmd *cobra.Command, s *editor.Session) error {
	p := s.Params()
	flags := cmd.Flags()

	if flags.Changed("speed") {
		p.Speed = playSpeed
	}
	if flags.Changed("volume") {
		p.Volume = playVolume
	}
	if flags.Changed("filter") {
		filter, err := editor.ParseFilterType(playFilter)
		if err != nil {
			return err
		}
		p.Filter = filter
	}
	if flags.Changed("freq") {
		p.FilterFrequency = playFrequency
	}
	if flags.Changed("q") {
		p.FilterQ = playQ
	}
	if flags.Changed("loop") {
		s.SetLoop(playLoop)
	}

	return s.SetParams(p)
}

func init() {
	playRange.register(playCmd)
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "repeat the range until interrupted")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1, "playback rate, pitch follows")
	playCmd.Flags().Float64Var(&playVolume, "volume", 1, "output gain")
	playCmd.Flags().StringVar(&playFilter, "filter", "none", "filter type")
	playCmd.Flags().Float64Var(&playFrequency, "freq", 1000, "filter frequency in Hz")
	playCmd.Flags().Float64Var(&playQ, "q", 1, "filter Q")

	rootCmd.AddCommand(playCmd)
}
