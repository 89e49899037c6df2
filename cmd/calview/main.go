// Command calview renders calibration preview surfaces from the command
// line: synthetic patterns, corrected split-view previews and JSON report
// snapshots.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "calview",
	Short: "Render display-calibration preview surfaces and reports",
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.slogLevel(),
	})))

	rootCmd.AddCommand(patternCmd(cfg), previewCmd(cfg), reportCmd(cfg))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
