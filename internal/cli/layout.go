package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints normalized geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute ring and item geometry as JSON",
		Long: `Normalize a tree into absolute ring and item segments.

Angles are in degrees (0 = top, clockwise); radii are fractions of the
chart radius. Output goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			t, err := pipeline.ParseFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(cmd, c.Config.Chart)
			g, hit, err := runner.NormalizeWithCacheInfo(ctx, t, opts)
			if err != nil {
				return err
			}
			logger.Debug("computed geometry", "rings", len(g.Rings), "items", len(g.Items), "cached", hit)

			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" {
				output = "-"
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			if output != "-" {
				printSuccess("Wrote geometry for %d rings and %d items", len(g.Rings), len(g.Items))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	flags.addGeometryFlags(cmd)
	flags.addCacheFlags(cmd)

	return cmd
}
