package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/render/sink"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Render generates output artifacts in the requested formats.
// Sunburst charts are drawn from g; node-link diagrams are drawn from t.
func Render(ctx context.Context, t tree.Tree, g geometry.Geometry, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if opts.IsNodelink() {
		return renderNodelink(ctx, t, opts)
	}
	return renderSunburst(ctx, g, opts)
}

// renderSunburst generates sunburst outputs.
func renderSunburst(ctx context.Context, g geometry.Geometry, opts Options) (map[string][]byte, error) {
	sinkOpts := opts.SinkOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(g, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, g, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(g, sinkOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates node-link outputs directly from the tree.
func renderNodelink(ctx context.Context, t tree.Tree, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(t, opts.NodelinkOptions())
	opts.Logger.Debug("generated dot", "bytes", len(dot))

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "nodelink diagrams cannot be rendered as %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
