package main

import (
	"github.com/spf13/cobra"

	"github.com/visorlab/calpreview"
)

func patternCmd(cfg config) *cobra.Command {
	var (
		pattern string
		width   int
		height  int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Render a synthetic calibration target to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := calpreview.ParsePattern(pattern)
			if err != nil {
				return err
			}
			buf := calpreview.GeneratePattern(spec, width, height)
			return calpreview.WriteSurface(buf, out)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "grayscale", "grayscale, colorchecker or checkerboard")
	cmd.Flags().IntVar(&width, "width", cfg.Width, "canvas width")
	cmd.Flags().IntVar(&height, "height", cfg.Height, "canvas height")
	cmd.Flags().StringVar(&out, "out", "pattern.png", "output file (.png, .tif)")
	return cmd
}
