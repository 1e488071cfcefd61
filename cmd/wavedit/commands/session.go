// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/wavedit"
	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/playback"
)

// rangeFlags selects part of a file with --start and --end.
type rangeFlags struct {
	start float64
	end   float64
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&r.start, "start", 0, "range start in seconds")
	cmd.Flags().Float64Var(&r.end, "end", 0, "range end in seconds (default: end of file)")
}

// apply selects the range on s when either flag was given.
func (r *rangeFlags) apply(cmd *cobra.Command, s *editor.Session) error {
	startSet := cmd.Flags().Changed("start")
	endSet := cmd.Flags().Changed("end")
	if !startSet && !endSet {
		return nil
	}

	end := r.end
	if !endSet {
		end = s.Duration()
	}

	s.SelectRange(r.start, end)
	if _, _, ok := s.Selection().Clamped(s.Duration()); !ok {
		return fmt.Errorf("empty range %s..%s in a file of %s",
			editor.FormatTime(r.start), editor.FormatTime(end), editor.FormatTime(s.Duration()))
	}

	return nil
}

// openSession loads path into a session configured from the config file.
// A nil engine gets an idle one that is never attached to a device.
func openSession(cmd *cobra.Command, path string, engine editor.Engine, opts ...editor.Option) (*editor.Session, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	if engine == nil {
		idle, err := playback.NewEngine(44100, 2, slog.Default())
		if err != nil {
			return nil, err
		}
		engine = idle
	}

	base := []editor.Option{
		editor.WithLogger(slog.Default()),
		editor.WithParams(params),
		editor.WithWidth(cfg.Width),
	}

	s, err := wavedit.OpenSession(cmd.Context(), engine, path, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	s.SetZoom(cfg.Zoom)
	s.SetLoop(cfg.Loop)

	return s, nil
}
