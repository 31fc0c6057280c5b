package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/tree"
)

func sample() tree.Tree {
	return tree.Tree{
		CenterName: "Assets",
		Color:      "#009950",
		Arcs: []tree.Arc{
			{Angle: tree.Span{-90, 0}, Layers: []tree.Layer{
				{Name: "Data", Color: "#00a2f6", Items: []string{"db", "files"}},
			}},
			{Angle: tree.Span{0, 90}, Layers: []tree.Layer{
				{Name: "Ops", Items: []string{"ci"}},
			}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		`"center" [label="Assets", shape=ellipse, fillcolor="#009950"]`,
		`"arc0" [label="arc 0"]`,
		`"center" -> "arc0"`,
		`"arc0.layer0" [label="Data", fillcolor="#00a2f6"]`,
		`"arc0" -> "arc0.layer0"`,
		`"arc0.layer0.item1" [label="files", shape=plaintext]`,
		`"arc1.layer0" -> "arc1.layer0.item0"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	if !strings.Contains(dot, `arc 0\n[-90°, 0°]`) {
		t.Error("ToDOT() detailed output missing arc span")
	}
	if !strings.Contains(dot, `Data\nitems: 2`) {
		t.Error("ToDOT() detailed output missing item count")
	}
	if !strings.Contains(dot, `Assets\n[-180°, 180°]`) {
		t.Error("ToDOT() detailed output missing default center span")
	}
}

func TestToDOT_HideItems(t *testing.T) {
	dot := ToDOT(sample(), Options{HideItems: true})
	if strings.Contains(dot, "item") {
		t.Errorf("ToDOT() with HideItems still has items:\n%s", dot)
	}
	if !strings.Contains(dot, `"arc1.layer0"`) {
		t.Error("ToDOT() with HideItems dropped layers")
	}
}

func TestToDOT_QuotesNames(t *testing.T) {
	tr := tree.Tree{CenterName: `say "hi"`}
	dot := ToDOT(tr, Options{})
	if !strings.Contains(dot, `label="say \"hi\""`) {
		t.Errorf("center label not quoted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(out, "Assets") {
		t.Error("RenderSVG() output missing center label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
