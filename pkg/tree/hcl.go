package tree

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// hclTree mirrors Tree using HCL conventions:
//
//	center_name = "Mission Critical Assets"
//	angle       = [-90, 90]
//	color       = "#009950"
//
//	arc {
//	  angle = [-90, -60]
//	  layer "1. Policy Management" {
//	    color = "#5697d9"
//	    items = ["a", "b"]
//	  }
//	}
type hclTree struct {
	CenterName string    `hcl:"center_name"`
	Angle      []float64 `hcl:"angle,optional"`
	Color      string    `hcl:"color,optional"`
	Arcs       []hclArc  `hcl:"arc,block"`
}

type hclArc struct {
	Angle  []float64  `hcl:"angle"`
	Layers []hclLayer `hcl:"layer,block"`
}

type hclLayer struct {
	Name  string   `hcl:"name,label"`
	Color string   `hcl:"color,optional"`
	Items []string `hcl:"items"`
}

func decodeHCL(data []byte) (Tree, error) {
	var raw hclTree
	// hclsimple picks native syntax from the .hcl suffix.
	if err := hclsimple.Decode("tree.hcl", data, nil, &raw); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode hcl tree")
	}

	t := Tree{
		CenterName: raw.CenterName,
		Color:      raw.Color,
		Arcs:       make([]Arc, len(raw.Arcs)),
	}
	if len(raw.Angle) > 0 {
		span, err := spanFrom(raw.Angle)
		if err != nil {
			return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "center angle")
		}
		t.Angle = span
	}
	for i, a := range raw.Arcs {
		span, err := spanFrom(a.Angle)
		if err != nil {
			return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "arc %d angle", i)
		}
		arc := Arc{Angle: span, Layers: make([]Layer, len(a.Layers))}
		for j, l := range a.Layers {
			arc.Layers[j] = Layer{Name: l.Name, Color: l.Color, Items: l.Items}
		}
		t.Arcs[i] = arc
	}
	return t, nil
}

func spanFrom(v []float64) (Span, error) {
	if len(v) != 2 {
		return Span{}, errors.New(errors.ErrCodeInvalidInput, "want [start, end], got %d values", len(v))
	}
	return Span{v[0], v[1]}, nil
}
