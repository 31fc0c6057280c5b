// Package label decides where text goes on a sunburst chart.
//
// Given a sector (an angular span in degrees and a radial span in pixels) a
// [Resolver] asks its [CentroidLocator] for the sector's centroid, shifts the
// point down by a fraction of the chart height and picks a rotation:
//
//   - sectors starting at or past +threshold are turned to read along the
//     right-hand side: rotate((a0+a1)/2 - 90)
//   - sectors ending at or before -threshold are turned the other way:
//     rotate((a0+a1)/2 + 90)
//   - everything else stays horizontal
//
// The threshold defaults to 60°, so a sector spanning exactly [60, 90] is
// rotated while one spanning [59, 89] is not.
//
// The resolver does no validation and no centroid math of its own. Callers
// pass sectors computed by the geometry package and a locator that matches
// the arc generator used for drawing.
package label
