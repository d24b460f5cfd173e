package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/namefreezers/forecast-qr-api/internal/qrcode"
)

func newQRCmd() *cobra.Command {
	var (
		out   string
		scale int
		size  int
	)
	c := &cobra.Command{
		Use:   "qr TEXT",
		Short: "Encode TEXT as a QR code (data URI on stdout, or PNG with --out)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size != 0 && (size < 21 || size > 4096) {
				return fmt.Errorf("--size must be between 21 and 4096")
			}
			b, err := qrcode.NewSkipGenerator(scale).Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if size > 0 {
				if b, err = qrcode.Resize(b, size); err != nil {
					return err
				}
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), qrcode.DataURI(b))
				return nil
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(b))
			return nil
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "write the PNG to this file")
	c.Flags().IntVar(&scale, "scale", qrcode.DefaultPixelsPerModule, "pixels per module")
	c.Flags().IntVar(&size, "size", 0, "resize the image to SIZE x SIZE pixels")
	return c
}
