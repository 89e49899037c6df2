package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/visorlab/calpreview"
)

func previewCmd(cfg config) *cobra.Command {
	var (
		pattern    string
		in         string
		width      int
		height     int
		brightness int
		contrast   int
		gamma      float64
		tempK      int
		split      float64
		noOverlay  bool
		out        string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a corrected split-view preview to an image file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := calpreview.NewStore()
			if err := applyParams(store, pattern, brightness, contrast, gamma, tempK); err != nil {
				return err
			}
			store.SetBoundary(split)

			r := calpreview.NewRenderer(store, width, height,
				calpreview.WithRendererOverlay(!noOverlay))
			if in != "" {
				img, err := decodeImage(in)
				if err != nil {
					return err
				}
				r.SetSource(img)
			}
			r.Tick()
			return calpreview.WriteSurface(r.Surface(), out)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "grayscale", "pattern when no source image is given")
	cmd.Flags().StringVar(&in, "in", "", "source image (PNG or JPEG) instead of a pattern")
	cmd.Flags().IntVar(&width, "width", cfg.Width, "canvas width")
	cmd.Flags().IntVar(&height, "height", cfg.Height, "canvas height")
	addParamFlags(cmd, &brightness, &contrast, &gamma, &tempK)
	cmd.Flags().Float64Var(&split, "split", calpreview.DefaultBoundary, "boundary fraction in [0,1]")
	cmd.Flags().BoolVar(&noOverlay, "no-overlay", false, "omit the divider and handle")
	cmd.Flags().StringVar(&out, "out", "preview.png", "output file (.png, .tif)")
	return cmd
}

func addParamFlags(cmd *cobra.Command, brightness, contrast *int, gamma *float64, tempK *int) {
	cmd.Flags().IntVar(brightness, "brightness", calpreview.DefaultBrightness, "brightness percent (0-200)")
	cmd.Flags().IntVar(contrast, "contrast", calpreview.DefaultContrast, "contrast percent (0-200)")
	cmd.Flags().Float64Var(gamma, "gamma", calpreview.DefaultGamma, "gamma exponent (1.0-3.0)")
	cmd.Flags().IntVar(tempK, "temperature", calpreview.DefaultTemperatureK, "color temperature in Kelvin (3000-10000)")
}

func applyParams(store *calpreview.Store, pattern string, brightness, contrast int, gamma float64, tempK int) error {
	spec, err := calpreview.ParsePattern(pattern)
	if err != nil {
		return err
	}
	store.SetPattern(spec)
	store.SetBrightness(brightness)
	store.SetContrast(contrast)
	if err := store.SetGamma(gamma); err != nil {
		return fmt.Errorf("--gamma: %w", err)
	}
	store.SetTemperature(tempK)
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
