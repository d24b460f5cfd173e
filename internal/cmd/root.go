package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the qrgen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qrgen",
		Short:         "Offline access to the forecast and QR code generators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newQRCmd())
	root.AddCommand(newForecastCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
