// Package render turns normalized chart geometry into output files.
//
// The work is split across subpackages:
//
//   - [arc]: sector path data, polygons and centroids
//   - [sink]: SVG, PNG, PDF and JSON writers for the sunburst chart
//   - [nodelink]: a Graphviz view of the same tree as a plain hierarchy
//
// This package holds the format conversion shared by the sinks. [ToPDF]
// shells out to rsvg-convert (from librsvg):
//
//	svg := sink.RenderSVG(geom)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [arc]: github.com/matzehuels/sunburst/pkg/render/arc
// [sink]: github.com/matzehuels/sunburst/pkg/render/sink
// [nodelink]: github.com/matzehuels/sunburst/pkg/render/nodelink
package render
