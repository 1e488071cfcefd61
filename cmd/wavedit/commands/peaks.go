// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	peaksWidth  int
	peaksHeight int
	peaksZoom   float64
	peaksAt     float64
	peaksRange  rangeFlags
	peaksPlain  bool
)

var peaksCmd = &cobra.Command{
	Use:   "peaks <file>",
	Short: "Draw the waveform in the terminal",
	Long: `Draw the first channel as one min/max column per terminal cell.

The view is centered on --at and narrowed by --zoom. A range given with
--start/--end is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		width, height := cfg.Width, cfg.Height
		if cmd.Flags().Changed("width") {
			width = peaksWidth
		}
		if cmd.Flags().Changed("height") {
			height = peaksHeight
		}
		if width < 1 || height < 1 {
			return fmt.Errorf("canvas must be at least 1x1, got %dx%d", width, height)
		}

		s, err := openSession(cmd, args[0], nil)
		if err != nil {
			return err
		}
		defer s.Close()

		s.SetWidth(width)
		if cmd.Flags().Changed("zoom") {
			s.SetZoom(peaksZoom)
		}
		if err := peaksRange.apply(cmd, s); err != nil {
			return err
		}
		if err := s.Seek(peaksAt); err != nil {
			return err
		}

		surface := newTermSurface(width, height)
		s.Draw(surface)

		out := cmd.OutOrStdout()
		if peaksPlain {
			for _, line := range surface.Lines() {
				fmt.Fprintln(out, line)
			}
			return nil
		}

		fmt.Fprintln(out, surface.Render(DefaultTheme, filepath.Base(args[0]), s.Frame()))
		return nil
	},
}

func init() {
	peaksCmd.Flags().IntVar(&peaksWidth, "width", 0, "columns (default from config)")
	peaksCmd.Flags().IntVar(&peaksHeight, "height", 0, "rows (default from config)")
	peaksCmd.Flags().Float64Var(&peaksZoom, "zoom", 1, "zoom factor, 1 shows the whole file")
	peaksCmd.Flags().Float64Var(&peaksAt, "at", 0, "time in seconds to center the view on")
	peaksCmd.Flags().BoolVar(&peaksPlain, "plain", false, "print cells without colors or frame")
	peaksRange.register(peaksCmd)

	rootCmd.AddCommand(peaksCmd)
}
