package geometry

import (
	"fmt"
	"sort"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// MalformedTreeError reports a structural problem found by strict
// normalization. Arc and Layer are -1 when the problem is not tied to a
// specific arc or layer.
type MalformedTreeError struct {
	Arc       int
	Layer     int
	LayerName string
	Reason    string
}

func (e *MalformedTreeError) Error() string {
	switch {
	case e.Arc < 0:
		return "center: " + e.Reason
	case e.Layer < 0:
		return fmt.Sprintf("arc %d: %s", e.Arc, e.Reason)
	case e.LayerName != "":
		return fmt.Sprintf("arc %d layer %d (%q): %s", e.Arc, e.Layer, e.LayerName, e.Reason)
	default:
		return fmt.Sprintf("arc %d layer %d: %s", e.Arc, e.Layer, e.Reason)
	}
}

func arcError(arc int, format string, args ...any) *MalformedTreeError {
	return &MalformedTreeError{Arc: arc, Layer: -1, Reason: fmt.Sprintf(format, args...)}
}

func checkTree(t tree.Tree) error {
	if err := checkSpan(t.CenterSpan()); err != nil {
		return &MalformedTreeError{Arc: -1, Layer: -1, Reason: err.Error()}
	}
	if len(t.Arcs) == 0 {
		return &MalformedTreeError{Arc: -1, Layer: -1, Reason: "tree has no arcs"}
	}
	for i, a := range t.Arcs {
		if err := checkSpan(a.Angle); err != nil {
			return arcError(i, "%s", err.Error())
		}
		if len(a.Layers) == 0 {
			return arcError(i, "arc has no layers")
		}
		for j, l := range a.Layers {
			if len(l.Items) == 0 {
				return &MalformedTreeError{Arc: i, Layer: j, LayerName: l.Name, Reason: "layer has no items"}
			}
		}
	}
	return checkOverlap(t.Arcs)
}

func checkSpan(s tree.Span) error {
	for _, a := range s {
		if err := errors.ValidateAngle(a); err != nil {
			return err
		}
	}
	if s[0] >= s[1] {
		return fmt.Errorf("angle [%g, %g] is empty or reversed", s[0], s[1])
	}
	return nil
}

// checkOverlap reports the first pair of arcs whose spans intersect.
// Touching endpoints are allowed.
func checkOverlap(arcs []tree.Arc) error {
	order := make([]int, len(arcs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return arcs[order[x]].Angle[0] < arcs[order[y]].Angle[0]
	})
	for k := 1; k < len(order); k++ {
		prev, cur := order[k-1], order[k]
		if arcs[cur].Angle[0] < arcs[prev].Angle[1] {
			return arcError(cur, "angle [%g, %g] overlaps arc %d [%g, %g]",
				arcs[cur].Angle[0], arcs[cur].Angle[1], prev, arcs[prev].Angle[0], arcs[prev].Angle[1])
		}
	}
	return nil
}
