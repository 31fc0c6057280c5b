package sink

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/tree"
)

func fixture(t *testing.T) geometry.Geometry {
	t.Helper()
	tr, err := tree.ImportFile(filepath.Join("..", "..", "tree", "testdata", "mission-critical.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	g, err := geometry.Normalize(tr)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return g
}

func quarter(t *testing.T, color string, itemNames ...string) geometry.Geometry {
	t.Helper()
	g, err := geometry.Normalize(tree.Tree{
		Arcs: []tree.Arc{{
			Angle:  tree.Span{0, 90},
			Layers: []tree.Layer{{Name: "L", Color: color, Items: itemNames}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}
