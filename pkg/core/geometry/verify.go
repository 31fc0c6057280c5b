package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Verify checks that g is a consistent layout of t to within tol:
//
//   - one ring per layer plus the center disc, one item per tree item
//   - items of a ring tile its angular span with no gaps or overlaps
//   - every arc's outermost band ends at 1.0
//   - band outer edges are evenly spaced and the padding is the same
//     everywhere
//   - LinearScale increases and reaches 1
//
// The padding is inferred from the first band that has nonzero width, so
// Verify works for any [WithPadding] value.
func Verify(g Geometry, t tree.Tree, tol float64) error {
	if len(g.Rings) != 1+t.LayerCount() {
		return verifyError("got %d rings, want %d", len(g.Rings), 1+t.LayerCount())
	}
	if len(g.Items) != t.ItemCount() {
		return verifyError("got %d items, want %d", len(g.Items), t.ItemCount())
	}
	center := g.Rings[0]
	if !center.Center || center.Radius[0] != 0 {
		return verifyError("ring 0 is not the center disc")
	}
	c := center.Radius[1]

	pad, havePad := 0.0, false
	ring := 1
	for ai, a := range t.Arcs {
		n := len(a.Layers)
		for li := range a.Layers {
			r := g.Rings[ring]
			if r.Arc != ai || r.Layer != li {
				return verifyError("ring %d is arc %d layer %d, want arc %d layer %d", ring, r.Arc, r.Layer, ai, li)
			}
			wantOuter := c + float64(li+1)/float64(n)*(1-c)
			if !scalar.EqualWithinAbs(r.Radius[1], wantOuter, tol) {
				return verifyError("ring %d outer radius %g, want %g", ring, r.Radius[1], wantOuter)
			}
			if li == n-1 && !scalar.EqualWithinAbs(r.Radius[1], 1, tol) {
				return verifyError("arc %d ends at radius %g, want 1", ai, r.Radius[1])
			}
			prevOuter := c
			if li > 0 {
				prevOuter = g.Rings[ring-1].Radius[1]
			}
			gap := r.Radius[0] - prevOuter
			switch {
			case r.Radius[0] > r.Radius[1]:
				return verifyError("ring %d radius %v is inverted", ring, r.Radius)
			case r.Radius[0] == r.Radius[1]:
				// Collapsed by padding; no gap to compare.
			case !havePad:
				pad, havePad = gap, true
			case !scalar.EqualWithinAbs(gap, pad, tol):
				return verifyError("ring %d starts %g past the previous band, want %g", ring, gap, pad)
			}
			if err := verifyItems(g.ItemsOf(ring), r, tol); err != nil {
				return fmt.Errorf("ring %d (%q): %w", ring, r.Name, err)
			}
			ring++
		}
	}

	for i, it := range g.Items {
		if it.Index != i {
			return verifyError("item %d has index %d", i, it.Index)
		}
		if i > 0 && it.LinearScale <= g.Items[i-1].LinearScale {
			return verifyError("linear scale decreases at item %d", i)
		}
	}
	if n := len(g.Items); n > 0 && !scalar.EqualWithinAbs(g.Items[n-1].LinearScale, 1, tol) {
		return verifyError("last linear scale is %g, want 1", g.Items[n-1].LinearScale)
	}
	return nil
}

func verifyItems(items []ItemSegment, r RingSegment, tol float64) error {
	if len(items) == 0 {
		return nil
	}
	widths := make([]float64, len(items))
	for i, it := range items {
		if it.Radius != r.Radius {
			return verifyError("item %d radius %v differs from ring %v", it.Index, it.Radius, r.Radius)
		}
		widths[i] = it.Angle[1] - it.Angle[0]
		if i > 0 && !scalar.EqualWithinAbs(it.Angle[0], items[i-1].Angle[1], tol) {
			return verifyError("gap between items %d and %d", items[i-1].Index, it.Index)
		}
	}
	if !scalar.EqualWithinAbs(items[0].Angle[0], r.Angle[0], tol) {
		return verifyError("first item starts at %g, want %g", items[0].Angle[0], r.Angle[0])
	}
	if last := items[len(items)-1]; !scalar.EqualWithinAbs(last.Angle[1], r.Angle[1], tol) {
		return verifyError("last item ends at %g, want %g", last.Angle[1], r.Angle[1])
	}
	if sum, want := floats.Sum(widths), r.Angle[1]-r.Angle[0]; !scalar.EqualWithinAbs(sum, want, tol) {
		return verifyError("item spans sum to %g, want %g", sum, want)
	}
	return nil
}

func verifyError(format string, args ...any) error {
	return errors.New(errors.ErrCodeInternal, "geometry check failed: "+format, args...)
}
