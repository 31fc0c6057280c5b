package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/render/arc"
)

// RenderSVG draws g as a standalone SVG document.
func RenderSVG(g geometry.Geometry, opts ...Option) []byte {
	return writeSVG(buildScene(g, newConfig(opts...)))
}

func writeSVG(s Scene) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Width, s.Height)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", arc.Format(s.Frame.OriginX), arc.Format(s.Frame.OriginY)))

	canvas.Gid("rings")
	for _, r := range s.Rings {
		canvas.Path(r.Path, "fill:"+r.Color+";stroke:black")
	}
	canvas.Gend()

	canvas.Gid("ring-labels")
	writeLabels(canvas, s.RingLabels)
	canvas.Gend()

	if len(s.Outlines) > 0 {
		canvas.Gid("item-outlines")
		for _, o := range s.Outlines {
			canvas.Path(o.Path, "stroke:red;fill-opacity:0")
		}
		canvas.Gend()
	}

	canvas.Gid("item-labels")
	writeLabels(canvas, s.ItemLabels)
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func writeLabels(canvas *svg.SVG, labels []Text) {
	for _, l := range labels {
		canvas.Text(0, 0, l.Text,
			fmt.Sprintf(`transform="%s"`, l.Placement.Transform()),
			`text-anchor="middle"`,
			fmt.Sprintf(`font-size="%s"`, arc.Format(l.FontSize)),
			`font-weight="700"`)
	}
}
