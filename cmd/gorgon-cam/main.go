// Command gorgon-cam builds a camera from flags or a preset file and prints its
// matrices, viewable region and screen/world conversions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &cameraFlags{}

	rootCmd := &cobra.Command{
		Use:   "gorgon-cam",
		Short: "Inspect camera transforms",
		Long: `gorgon-cam builds an orthographic or perspective camera and reports its
view and projection matrices, viewable region, and screen/world conversions.
The camera comes from a TOML or YAML preset (--preset) with flags overriding
individual settings.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.register(rootCmd)

	rootCmd.AddCommand(
		newMatricesCmd(opts),
		newProjectCmd(opts),
		newUnprojectCmd(opts),
		newRegionCmd(opts),
		newPresetCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
