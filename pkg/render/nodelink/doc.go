// Package nodelink renders a chart tree as a traditional node-link diagram.
//
// The sunburst packs the hierarchy into rings; this view draws the same
// tree top to bottom with Graphviz (center → arcs → layers → items), which
// is easier to read when checking the structure of a large input.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF, use [RenderPDF], which converts the SVG with rsvg-convert.
//
// # Options
//
//   - Detailed: arc nodes show their angular span and layer nodes their
//     item count
//   - HideItems: stop at layers, for trees with many items
//
// Layer nodes are filled with the layer color so the two views can be
// compared side by side.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
