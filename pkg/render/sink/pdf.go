package sink

import (
	"context"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/render"
)

// RenderPDF renders g as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, g geometry.Geometry, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(g, opts...))
}
