// SPDX-License-Identifier: EPL-2.0

// Package main is the entry point for the wavedit CLI.
//
// Usage:
//
//	wavedit [flags] <command> [args]
//
// Commands:
//
//	info     - Show format, length and level of an audio file
//	peaks    - Draw the waveform in the terminal
//	trim     - Keep only a range of a file
//	export   - Write a range of a file as 16-bit WAV
//	play     - Play a file or a range of it
//	config   - Show or create the config file
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/ik5/wavedit/cmd/wavedit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
