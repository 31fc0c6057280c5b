package geometry

import (
	stderrors "errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

const tol = 1e-9

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "abc"
	}
	return out
}

func missionCritical(t *testing.T) tree.Tree {
	t.Helper()
	tr, err := tree.ImportFile(filepath.Join("..", "..", "tree", "testdata", "mission-critical.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return tr
}

func TestNormalizeHalfCenter(t *testing.T) {
	tr := tree.Tree{
		CenterName: "X",
		Arcs: []tree.Arc{{
			Angle:  tree.Span{-90, 90},
			Layers: []tree.Layer{{Name: "L1", Items: []string{"a", "b"}}},
		}},
	}
	g, err := Normalize(tr, WithCenterRadius(0.5))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if len(g.Rings) != 2 {
		t.Fatalf("len(Rings) = %d, want 2", len(g.Rings))
	}
	center, l1 := g.Rings[0], g.Rings[1]
	if center.Name != "X" || center.Radius != [2]float64{0, 0.5} || !center.Center {
		t.Errorf("center = %+v", center)
	}
	if center.Angle != [2]float64{-180, 180} {
		t.Errorf("center angle = %v, want full circle", center.Angle)
	}
	if l1.Name != "L1" || !floats.EqualApprox(l1.Radius[:], []float64{0.5 + DefaultPadding, 1.0}, tol) {
		t.Errorf("L1 = %+v", l1)
	}

	want := [][2]float64{{-90, 0}, {0, 90}}
	if len(g.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(g.Items), len(want))
	}
	for i, w := range want {
		if !floats.EqualApprox(g.Items[i].Angle[:], w[:], tol) {
			t.Errorf("item %d angle = %v, want %v", i, g.Items[i].Angle, w)
		}
		if g.Items[i].Ring != 1 {
			t.Errorf("item %d ring = %d, want 1", i, g.Items[i].Ring)
		}
	}
}

func TestNormalizeTenItems(t *testing.T) {
	tr := tree.Tree{
		CenterName: "X",
		Arcs: []tree.Arc{{
			Angle:  tree.Span{-60, 60},
			Layers: []tree.Layer{{Name: "L", Items: items(10)}},
		}},
	}
	g, err := Normalize(tr)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if g.Items[0].Angle[0] != -60 {
		t.Errorf("item 0 starts at %v, want exactly -60", g.Items[0].Angle[0])
	}
	if g.Items[9].Angle[1] != 60 {
		t.Errorf("item 9 ends at %v, want exactly 60", g.Items[9].Angle[1])
	}
	for i, it := range g.Items {
		if w := it.Angle[1] - it.Angle[0]; math.Abs(w-12) > tol {
			t.Errorf("item %d width = %v, want 12", i, w)
		}
	}
	if !floats.EqualApprox(g.Items[0].Angle[:], []float64{-60, -48}, tol) {
		t.Errorf("item 0 = %v, want [-60 -48]", g.Items[0].Angle)
	}
}

func TestNormalizeBands(t *testing.T) {
	tests := []struct {
		name   string
		layers int
		c, pad float64
		want   [][2]float64
	}{
		{"single layer", 1, DefaultCenterRadius, DefaultPadding, [][2]float64{{1.0/6 + 0.02, 1}}},
		{"two layers", 2, 0.2, 0.05, [][2]float64{{0.25, 0.6}, {0.65, 1}}},
		{"no padding", 4, 0, 0, [][2]float64{{0, 0.25}, {0.25, 0.5}, {0.5, 0.75}, {0.75, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers := make([]tree.Layer, tt.layers)
			for i := range layers {
				layers[i] = tree.Layer{Name: "L", Items: items(1)}
			}
			tr := tree.Tree{Arcs: []tree.Arc{{Angle: tree.Span{0, 90}, Layers: layers}}}
			g, err := Normalize(tr, WithCenterRadius(tt.c), WithPadding(tt.pad))
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			for i, w := range tt.want {
				got := g.Rings[i+1].Radius
				if !floats.EqualApprox(got[:], w[:], tol) {
					t.Errorf("band %d = %v, want %v", i, got, w)
				}
			}
			if got := g.Rings[len(g.Rings)-1].Radius[1]; got != 1 {
				t.Errorf("outer edge = %v, want exactly 1", got)
			}
		})
	}
}

func TestNormalizeOrdering(t *testing.T) {
	tr := missionCritical(t)
	g, err := Normalize(tr)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(g.Rings) != 9 || len(g.Items) != 67 {
		t.Fatalf("got %d rings, %d items; want 9, 67", len(g.Rings), len(g.Items))
	}
	wantNames := []string{
		"Mission Critical Assets", "1. Policy Management", "2. Data", "3. Application",
		"4. Endpoint", "5. Perimeter and Network", "6. Public/Private Cloud",
		"7. Platforms", "8. Operations",
	}
	for i, r := range g.Rings {
		if r.Name != wantNames[i] {
			t.Errorf("ring %d = %q, want %q", i, r.Name, wantNames[i])
		}
	}
	// Items of ring 3 ("3. Application") start after 10 + 10 items.
	app := g.ItemsOf(3)
	if len(app) != 5 || app[0].Index != 20 {
		t.Errorf("ItemsOf(3) = %d items starting at %d, want 5 starting at 20", len(app), app[0].Index)
	}
	if got := len(g.Layers()); got != 8 {
		t.Errorf("len(Layers()) = %d, want 8", got)
	}
	if err := Verify(g, tr, tol); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestNormalizeOwnLayerCount(t *testing.T) {
	// Item spans depend only on the owning layer, never on the widest layer.
	tr := tree.Tree{Arcs: []tree.Arc{{
		Angle: tree.Span{-60, 60},
		Layers: []tree.Layer{
			{Name: "wide", Items: items(13)},
			{Name: "narrow", Items: items(5)},
		},
	}}}
	g, err := Normalize(tr)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range g.ItemsOf(2) {
		if w := it.Angle[1] - it.Angle[0]; math.Abs(w-24) > tol {
			t.Errorf("narrow item %d width = %v, want 24", it.Index, w)
		}
	}
}

func TestNormalizeLinearScale(t *testing.T) {
	g, err := Normalize(missionCritical(t))
	if err != nil {
		t.Fatal(err)
	}
	n := float64(len(g.Items))
	for i, it := range g.Items {
		if want := float64(i+1) / n; it.LinearScale != want {
			t.Errorf("item %d LinearScale = %v, want %v", i, it.LinearScale, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	tr := missionCritical(t)
	a, err := Normalize(tr)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize(tr)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Normalize is not deterministic")
	}
	a.Rings[0].Name = "mutated"
	if b.Rings[0].Name == "mutated" {
		t.Error("results share backing arrays")
	}
}

func TestNormalizeLenient(t *testing.T) {
	tr := tree.Tree{
		CenterName: "X",
		Arcs: []tree.Arc{
			{Angle: tree.Span{-90, 0}},
			{Angle: tree.Span{0, 90}, Layers: []tree.Layer{{Name: "empty"}, {Name: "one", Items: []string{"a"}}}},
		},
	}
	g, err := Normalize(tr)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(g.Rings) != 3 {
		t.Errorf("len(Rings) = %d, want 3", len(g.Rings))
	}
	if len(g.Items) != 1 || g.Items[0].Angle != [2]float64{0, 90} {
		t.Errorf("Items = %+v, want one item spanning the whole arc", g.Items)
	}
	if err := Verify(g, tr, tol); err != nil {
		t.Errorf("Verify: %v", err)
	}

	empty, err := Normalize(tree.Tree{CenterName: "only"})
	if err != nil {
		t.Fatalf("Normalize(empty): %v", err)
	}
	if len(empty.Rings) != 1 || len(empty.Items) != 0 {
		t.Errorf("empty tree gave %d rings, %d items", len(empty.Rings), len(empty.Items))
	}
}

func TestNormalizeStrict(t *testing.T) {
	ok := tree.Layer{Name: "ok", Items: items(2)}
	tests := []struct {
		name      string
		tree      tree.Tree
		arc       int
		layer     int
		layerName string
	}{
		{"no arcs", tree.Tree{}, -1, -1, ""},
		{"center out of range", tree.Tree{Angle: tree.Span{-200, 0}, Arcs: []tree.Arc{{Angle: tree.Span{-90, 0}, Layers: []tree.Layer{ok}}}}, -1, -1, ""},
		{"arc without layers", tree.Tree{Arcs: []tree.Arc{
			{Angle: tree.Span{-90, 0}, Layers: []tree.Layer{ok}},
			{Angle: tree.Span{0, 90}},
		}}, 1, -1, ""},
		{"layer without items", tree.Tree{Arcs: []tree.Arc{
			{Angle: tree.Span{-90, 0}, Layers: []tree.Layer{ok, {Name: "Data"}}},
		}}, 0, 1, "Data"},
		{"reversed arc", tree.Tree{Arcs: []tree.Arc{{Angle: tree.Span{10, -10}, Layers: []tree.Layer{ok}}}}, 0, -1, ""},
		{"empty arc", tree.Tree{Arcs: []tree.Arc{{Angle: tree.Span{10, 10}, Layers: []tree.Layer{ok}}}}, 0, -1, ""},
		{"angle out of range", tree.Tree{Arcs: []tree.Arc{{Angle: tree.Span{170, 190}, Layers: []tree.Layer{ok}}}}, 0, -1, ""},
		{"overlap", tree.Tree{Arcs: []tree.Arc{
			{Angle: tree.Span{0, 90}, Layers: []tree.Layer{ok}},
			{Angle: tree.Span{-90, 10}, Layers: []tree.Layer{ok}},
		}}, 0, -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.tree, WithStrict(true))
			var mte *MalformedTreeError
			if !stderrors.As(err, &mte) {
				t.Fatalf("error = %v, want *MalformedTreeError", err)
			}
			if mte.Arc != tt.arc || mte.Layer != tt.layer || mte.LayerName != tt.layerName {
				t.Errorf("error at arc %d layer %d (%q), want arc %d layer %d (%q): %v",
					mte.Arc, mte.Layer, mte.LayerName, tt.arc, tt.layer, tt.layerName, err)
			}
			if mte.Reason == "" {
				t.Error("empty Reason")
			}

			// Lenient mode never fails on the same input.
			if _, err := Normalize(tt.tree); err != nil {
				t.Errorf("lenient Normalize: %v", err)
			}
		})
	}
}

func TestNormalizeStrictAcceptsFixture(t *testing.T) {
	if _, err := Normalize(missionCritical(t), WithStrict(true)); err != nil {
		t.Fatalf("Normalize(strict): %v", err)
	}
}

func TestNormalizeTouchingArcs(t *testing.T) {
	ok := tree.Layer{Name: "ok", Items: items(1)}
	tr := tree.Tree{Arcs: []tree.Arc{
		{Angle: tree.Span{60, 70}, Layers: []tree.Layer{ok}},
		{Angle: tree.Span{-60, 60}, Layers: []tree.Layer{ok}},
	}}
	if _, err := Normalize(tr, WithStrict(true)); err != nil {
		t.Errorf("touching arcs rejected: %v", err)
	}
}

func TestNormalizeInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"negative center", []Option{WithCenterRadius(-0.1)}},
		{"center of one", []Option{WithCenterRadius(1)}},
		{"NaN center", []Option{WithCenterRadius(math.NaN())}},
		{"negative padding", []Option{WithPadding(-0.01)}},
		{"padding past edge", []Option{WithCenterRadius(0.5), WithPadding(0.6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tree.Tree{}, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestNormalizePaddingWiderThanBand(t *testing.T) {
	// Four layers outside c=0.5 leave bands 0.125 wide.
	tr := tree.Tree{Arcs: []tree.Arc{{
		Angle: tree.Span{0, 90},
		Layers: []tree.Layer{
			{Name: "a", Items: items(1)},
			{Name: "b", Items: items(1)},
			{Name: "c", Items: items(1)},
			{Name: "d", Items: items(1)},
		},
	}}}

	tests := []struct {
		name    string
		pad     float64
		strict  bool
		wantErr bool
	}{
		{"narrower strict", 0.1, true, false},
		{"equal strict", 0.125, true, true},
		{"wider strict", 0.3, true, true},
		{"wider lenient", 0.3, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Normalize(tr, WithCenterRadius(0.5), WithPadding(tt.pad), WithStrict(tt.strict))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			for _, r := range g.Layers() {
				if r.Radius[0] > r.Radius[1] {
					t.Errorf("ring %q radius %v is inverted", r.Name, r.Radius)
				}
			}
			if err := Verify(g, tr, tol); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestBandCollapsesUnderPadding(t *testing.T) {
	tests := []struct {
		pad  float64
		i, n int
		want [2]float64
	}{
		{0.02, 0, 2, [2]float64{0.52, 0.75}},
		{0.3, 0, 2, [2]float64{0.75, 0.75}},
		{0.3, 1, 2, [2]float64{1, 1}},
	}
	for _, tt := range tests {
		got := band(0.5, tt.pad, tt.i, tt.n)
		if !floats.EqualApprox(got[:], tt.want[:], tol) {
			t.Errorf("band(0.5, %g, %d, %d) = %v, want %v", tt.pad, tt.i, tt.n, got, tt.want)
		}
	}
}

func TestMalformedTreeErrorMessage(t *testing.T) {
	tests := []struct {
		err  *MalformedTreeError
		want string
	}{
		{&MalformedTreeError{Arc: -1, Layer: -1, Reason: "tree has no arcs"}, "center: tree has no arcs"},
		{&MalformedTreeError{Arc: 2, Layer: -1, Reason: "arc has no layers"}, "arc 2: arc has no layers"},
		{&MalformedTreeError{Arc: 1, Layer: 3, LayerName: "Data", Reason: "layer has no items"}, `arc 1 layer 3 ("Data"): layer has no items`},
		{&MalformedTreeError{Arc: 1, Layer: 3, Reason: "layer has no items"}, "arc 1 layer 3: layer has no items"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
