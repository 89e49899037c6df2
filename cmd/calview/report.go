package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/visorlab/calpreview"
)

func reportCmd(cfg config) *cobra.Command {
	var (
		pattern    string
		width      int
		height     int
		brightness int
		contrast   int
		gamma      float64
		tempK      int
		out        string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a JSON report snapshot for the given parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := calpreview.NewStore()
			if err := applyParams(store, pattern, brightness, contrast, gamma, tempK); err != nil {
				return err
			}
			st := store.Snapshot()
			before := calpreview.GeneratePattern(st.Pattern, width, height)
			after := calpreview.Transform(before, st.Params)
			rep, err := calpreview.BuildReport(store, before, after)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(filepath.Clean(out), data, 0o644)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "colorchecker", "pattern used for the before/after pair")
	cmd.Flags().IntVar(&width, "width", cfg.Width, "canvas width")
	cmd.Flags().IntVar(&height, "height", cfg.Height, "canvas height")
	addParamFlags(cmd, &brightness, &contrast, &gamma, &tempK)
	cmd.Flags().StringVar(&out, "out", "-", "output file, or - for stdout")
	return cmd
}
