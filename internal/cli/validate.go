package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// validateCommand checks tree files in strict mode and verifies the
// resulting geometry.
func (c *CLI) validateCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check tree files for structural problems",
		Long: `Decode each file, normalize it in strict mode and verify that every
ring and item tiles its parent exactly. Exits non-zero if any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config.Chart)
			opts.Strict = true
			if err := opts.ValidateForNormalize(); err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				if err := validateFile(path, opts); err != nil {
					printError("%s: %v", path, err)
					failed++
					continue
				}
				printSuccess("%s", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			if len(args) == 1 {
				printNewline()
				printNextStep("Render it", appName+" render "+args[0])
			}
			return nil
		},
	}

	flags.addGeometryFlags(cmd)
	return cmd
}

func validateFile(path string, opts pipeline.Options) error {
	t, err := pipeline.ParseFile(path)
	if err != nil {
		return err
	}
	g, err := pipeline.Normalize(t, opts)
	if err != nil {
		return err
	}
	return geometry.Verify(g, t, pipeline.VerifyTolerance)
}
