// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var trimRange rangeFlags

var trimCmd = &cobra.Command{
	Use:   "trim <in> <out>",
	Short: "Keep only a range of a file",
	Long: `Cut the file down to --start..--end and write what is left to <out>
as 16-bit PCM WAV.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("start") && !cmd.Flags().Changed("end") {
			return errors.New("trim needs --start and/or --end")
		}

		s, err := openSession(cmd, args[0], nil)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := trimRange.apply(cmd, s); err != nil {
			return err
		}
		if !s.Trim() {
			return errors.New("range is shorter than one sample frame")
		}

		n, err := writeExport(cmd, s, args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", args[1], n)
		return nil
	},
}

func init() {
	trimRange.register(trimCmd)
	rootCmd.AddCommand(trimCmd)
}
