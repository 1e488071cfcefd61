// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/wavedit"
	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/waveform"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show format, length and level of an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		buf, err := wavedit.DecodeFile(path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "file:\t%s\n", path)
		fmt.Fprintf(w, "format:\t%s\n", strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
		fmt.Fprintf(w, "channels:\t%d\n", buf.Channels())
		fmt.Fprintf(w, "rate:\t%d Hz\n", buf.SampleRate())
		fmt.Fprintf(w, "frames:\t%d\n", buf.Frames())
		fmt.Fprintf(w, "duration:\t%s\n", editor.FormatTime(buf.Duration()))

		for c := range buf.Channels() {
			// one column spanning the whole channel is its overall range
			peaks := waveform.Peaks(buf.Channel(c), 1, 1)
			if len(peaks) == 0 {
				fmt.Fprintf(w, "peak %d:\t-\n", c)
				continue
			}
			level := max(math.Abs(float64(peaks[0].Min)), math.Abs(float64(peaks[0].Max)))
			fmt.Fprintf(w, "peak %d:\t%.1f dBFS\n", c, dbfs(level))
		}

		return w.Flush()
	},
}

func dbfs(level float64) float64 {
	if level <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(level)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
