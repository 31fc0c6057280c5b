// Package geometry turns a [tree.Tree] into absolute chart coordinates.
//
// A tree is nested (center → arcs → layers → items) but renderers want flat
// lists of annular sectors. [Normalize] walks the tree once and returns a
// [Geometry] holding one [RingSegment] per layer (plus the center disc) and
// one [ItemSegment] per item.
//
// # Coordinates
//
// Angles are degrees measured clockwise from vertical, so 0 is the top of
// the chart and the usual range is [-180, 180]. Radii are fractions of the
// chart radius: 0 is the center and 1.0 is the outer edge.
//
// The center disc covers [0, c] where c is the center radius (1/6 unless
// [WithCenterRadius] says otherwise). An arc with L layers splits the
// remaining [c, 1] into L equal bands. Band i covers
//
//	[c + i/L·(1-c) + pad, c + (i+1)/L·(1-c)]
//
// where pad ([WithPadding], default 0.02) is subtracted from the inner edge
// only, leaving a thin gap between neighboring rings. Items split their
// layer's angular span evenly using that layer's own item count.
//
// # Ordering
//
// Rings are emitted center first, then every arc in input order and every
// layer within it from the inside out. Items follow the same walk, so
// [ItemSegment.Index] is a stable position across the whole chart.
//
// # Validation
//
// By default Normalize is lenient: arcs without layers produce no rings and
// layers without items produce a ring with no items. [WithStrict] turns these
// and other structural problems into a [*MalformedTreeError] naming the arc
// and layer at fault. [Verify] re-checks a computed Geometry against the
// invariants above and is used by tests and by `sunburst validate --verify`.
package geometry
