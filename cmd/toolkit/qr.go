package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/cardtoolkit/internal/image"
	"github.com/youruser/cardtoolkit/internal/util"
)

func newQRCmd(a *app) *cobra.Command {
	var size int
	var name string
	cmd := &cobra.Command{
		Use:   "qr <text>",
		Short: "Write a QR code PNG for the given text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 21 {
				return fmt.Errorf("size must be at least 21 pixels, got %d", size)
			}
			b, err := imagepkg.GenerateQRPNG(args[0], size)
			if err != nil {
				return fmt.Errorf("generate qr: %w", err)
			}
			path, err := util.WriteFile(a.cfg.OutputDir, name, b)
			if err != nil {
				return err
			}
			slog.Info("qr code written", "path", path, "size", size)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 400, "edge length in pixels")
	cmd.Flags().StringVar(&name, "name", "qr.png", "file name inside the output directory")
	return cmd
}
