package tree

// FullCircle is the center span used when a tree does not declare one.
var FullCircle = Span{-180, 180}

// Span is an angular range [start, end] in degrees, measured clockwise from
// vertical (0 = top).
type Span [2]float64

// Start returns the first angle of the span.
func (s Span) Start() float64 { return s[0] }

// End returns the second angle of the span.
func (s Span) End() float64 { return s[1] }

// Width returns end - start. It is negative for reversed spans.
func (s Span) Width() float64 { return s[1] - s[0] }

// IsZero reports whether the span was left unset.
func (s Span) IsZero() bool { return s[0] == 0 && s[1] == 0 }

// Tree is the in-memory input for a sunburst chart: a center node surrounded
// by arcs, each arc stacking one or more layers of items.
type Tree struct {
	CenterName string `json:"centerName" yaml:"centerName"`
	Angle      Span   `json:"angle,omitempty" yaml:"angle,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Arcs       []Arc  `json:"arcs" yaml:"arcs"`
}

// Arc is an angular wedge of the chart. Layers[0] is the innermost band.
type Arc struct {
	Angle  Span    `json:"angle" yaml:"angle"`
	Layers []Layer `json:"layers" yaml:"layers"`
}

// Layer is one radial band of an arc holding an ordered list of item names.
type Layer struct {
	Name  string   `json:"name" yaml:"name"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty"`
	Items []string `json:"items" yaml:"items"`
}

// CenterSpan returns the declared center span, or [FullCircle] when unset.
func (t Tree) CenterSpan() Span {
	if t.Angle.IsZero() {
		return FullCircle
	}
	return t.Angle
}

// LayerCount returns the number of layers across all arcs.
func (t Tree) LayerCount() int {
	n := 0
	for _, a := range t.Arcs {
		n += len(a.Layers)
	}
	return n
}

// ItemCount returns the number of items across all layers.
func (t Tree) ItemCount() int {
	n := 0
	for _, a := range t.Arcs {
		for _, l := range a.Layers {
			n += len(l.Items)
		}
	}
	return n
}
