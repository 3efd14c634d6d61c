// Command glgen generates Go bindings for OpenGL from the Khronos registry.
//
//	glgen [generate] [--config glgen.yaml] [--registry registry/gl.xml] [--output gl] [--package gl]
//	glgen watch
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ardanlabs/glgen/config"
)

var rootCmd = &cobra.Command{
	Use:          "glgen",
	Short:        "Generate Go bindings for OpenGL from the Khronos registry",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the bindings once (the default)",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	return generate(cfg)
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(generateCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
