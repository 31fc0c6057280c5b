// Package sink writes normalized sunburst geometry to output formats.
//
// # Frame
//
// Geometry radii are fractions of the chart radius. The sinks map them to
// pixels with a frame chosen from the center ring's span:
//
//   - a center span inside [-90, 90] is a half disc opening upward; the
//     origin sits at the bottom middle of the canvas and one radius unit
//     equals the canvas height
//   - any other span is drawn around the canvas center with a radius of
//     half the shorter side
//
// Font sizes and label nudges are fractions of that radius unit, so a chart
// scales uniformly with the canvas.
//
// # Draw Order
//
// Every raster and vector sink paints in the same order:
//
//  1. ring sectors, filled with the ring color and stroked black
//  2. ring names, bold and centered on the inner half of the ring
//  3. item outlines in red, only with [WithDebugOutlines]
//  4. item names, centered on the item sector
//
// Labels are placed by a [label.Resolver]; past ±60° they are rotated to
// follow the chart edge.
//
// # Formats
//
//   - [RenderSVG]: SVG document written with svgo
//   - [RenderPNG]: raster image drawn with golang.org/x/image
//   - [RenderPDF]: the SVG converted by rsvg-convert
//   - [RenderJSON]: geometry plus resolved paths and placements, for
//     clients that draw the chart themselves
package sink
