// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/render"
)

var (
	exportRange rangeFlags
	exportRate  int
	exportMono  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <in> [out]",
	Short: "Write a range of a file as 16-bit WAV",
	Long: `Write --start..--end, or the whole file, to [out] as 16-bit PCM WAV.
The input is not changed. [out] defaults to export_name from the config.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		out := cfg.ExportName
		if len(args) == 2 {
			out = args[1]
		}

		renderer := render.New(render.Options{SampleRate: exportRate, Mono: exportMono})
		s, err := openSession(cmd, args[0], nil, editor.WithRenderer(renderer))
		if err != nil {
			return err
		}
		defer s.Close()

		if err := exportRange.apply(cmd, s); err != nil {
			return err
		}

		n, err := writeExport(cmd, s, out)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, n)
		return nil
	},
}

// writeExport exports the session to path, removing a partial file on
// failure.
func writeExport(cmd *cobra.Command, s *editor.Session, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := s.Export(cmd.Context(), f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}

	return n, nil
}

func init() {
	exportRange.register(exportCmd)
	exportCmd.Flags().IntVar(&exportRate, "rate", 0, "output sample rate (default: keep)")
	exportCmd.Flags().BoolVar(&exportMono, "mono", false, "mix down to one channel")

	rootCmd.AddCommand(exportCmd)
}
