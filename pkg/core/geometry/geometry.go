package geometry

import "github.com/matzehuels/sunburst/pkg/tree"

// RingSegment is one annular band of the chart: the center disc or a layer
// of an arc.
type RingSegment struct {
	Name   string     `json:"name"`
	Color  string     `json:"color,omitempty"`
	Angle  [2]float64 `json:"angle"`
	Radius [2]float64 `json:"radius"`
	// Arc and Layer locate the source layer in the tree. Both are -1 for the
	// center disc.
	Arc    int  `json:"arc"`
	Layer  int  `json:"layer"`
	Center bool `json:"center,omitempty"`
}

// ItemSegment is the sector occupied by a single item. Radius is the owning
// ring's radial span.
type ItemSegment struct {
	Name   string     `json:"name"`
	Angle  [2]float64 `json:"angle"`
	Radius [2]float64 `json:"radius"`
	Ring   int        `json:"ring"`
	Index  int        `json:"index"`
	// LinearScale is the item's 1-based position among all items of the
	// chart divided by the item count. Renderers may use it for gradients;
	// nothing in the layout depends on it.
	LinearScale float64 `json:"linearScale"`
}

// Geometry is the flattened layout of a tree.
type Geometry struct {
	Rings []RingSegment `json:"rings"`
	Items []ItemSegment `json:"items"`
}

// ItemsOf returns the items drawn inside ring i, in order.
func (g Geometry) ItemsOf(ring int) []ItemSegment {
	var out []ItemSegment
	for _, it := range g.Items {
		if it.Ring == ring {
			out = append(out, it)
		}
	}
	return out
}

// Layers returns the non-center rings.
func (g Geometry) Layers() []RingSegment {
	out := make([]RingSegment, 0, len(g.Rings))
	for _, r := range g.Rings {
		if !r.Center {
			out = append(out, r)
		}
	}
	return out
}

func span(s tree.Span) [2]float64 { return [2]float64{s[0], s[1]} }
