package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartFlags
	output   string // output file path (or base path for multiple outputs)
	vizTypes string // comma-separated visualization types
	formats  string // comma-separated output formats
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree to SVG, PNG, PDF or JSON",
		Long: `Render a tree file as a sunburst chart or a node-link diagram.

With a single type and format the result goes to --output (default: the
input name with the format's extension). Otherwise one file per
combination is written next to the base path, e.g. chart_sunburst.svg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizTypes, "type", "t", "", "visualization type(s): sunburst (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("type", listCompletion(pipeline.VizTypeSunburst, pipeline.VizTypeNodelink))
	_ = cmd.RegisterFlagCompletionFunc("format", listCompletion(pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON))
	opts.addGeometryFlags(cmd)
	opts.addRenderFlags(cmd)
	opts.addCacheFlags(cmd)

	return cmd
}

// runRender loads the tree and renders every requested type and format.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base := opts.options(cmd, c.Config.Chart)
	if f := parseList(opts.formats); len(f) > 0 {
		base.Formats = f
	}
	if len(base.Formats) == 0 {
		base.Formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateFormats(base.Formats); err != nil {
		return err
	}
	vizTypes := parseList(opts.vizTypes)
	if len(vizTypes) == 0 {
		vizTypes = []string{base.VizType}
		if base.VizType == "" {
			vizTypes = []string{pipeline.DefaultVizType}
		}
	}
	for _, v := range vizTypes {
		if err := pipeline.ValidateVizType(v); err != nil {
			return err
		}
	}

	t, err := pipeline.ParseFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %d arcs, %d layers, %d items", input, len(t.Arcs), t.LayerCount(), t.ItemCount())

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	single := len(vizTypes) == 1 && len(base.Formats) == 1
	prefix := basePath(opts.output, input)

	for _, vizType := range vizTypes {
		runOpts := base
		runOpts.VizType = vizType
		runOpts.Formats = supportedFormats(vizType, base.Formats)
		if len(runOpts.Formats) == 0 {
			logger.Debugf("Skipping %s (no supported formats)", vizType)
			continue
		}

		spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", vizType))
		spinner.Start()
		p := newProgress(logger)
		res, err := runner.Execute(ctx, t, runOpts)
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("%s: %w", vizType, err)
		}
		toStdout := single && opts.output == "-"
		if !toStdout {
			printStats(res.Stats.RingCount, res.Stats.ItemCount, res.CacheInfo.RenderHit)
		}

		for _, format := range runOpts.Formats {
			path := outputPath(opts.output, prefix, vizType, format, single, len(vizTypes) == 1)
			if err := writeOutput(path, res.Artifacts[format]); err != nil {
				return err
			}
			if !toStdout {
				printFile(path)
			}
		}
		p.done(fmt.Sprintf("Rendered %s", vizType))
	}
	return nil
}

// supportedFormats drops formats a visualization type cannot produce.
func supportedFormats(vizType string, formats []string) []string {
	var out []string
	for _, f := range formats {
		o := pipeline.Options{VizType: vizType, Formats: []string{f}}
		if err := o.ValidateForRender(); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// Known format extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names one artifact: the explicit output for a single result,
// base.format for one type, base_type.format otherwise.
func outputPath(output, base, vizType, format string, single, oneType bool) string {
	switch {
	case single && output != "":
		return output
	case oneType:
		return base + "." + format
	default:
		return fmt.Sprintf("%s_%s.%s", base, vizType, format)
	}
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
