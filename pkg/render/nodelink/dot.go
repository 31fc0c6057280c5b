package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds angles and item counts to node labels.
	Detailed bool
	// HideItems omits item nodes.
	HideItems bool
}

// ToDOT converts a tree to Graphviz DOT format.
// The result can be rendered with [RenderSVG] or [RenderPDF].
func ToDOT(t tree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [%s];\n", "center", strings.Join(attrs(centerLabel(t, opts.Detailed), t.Color, "ellipse"), ", "))
	for i, a := range t.Arcs {
		arcID := fmt.Sprintf("arc%d", i)
		fmt.Fprintf(&buf, "  %q [%s];\n", arcID, strings.Join(attrs(arcLabel(i, a, opts.Detailed), "", "box"), ", "))
		fmt.Fprintf(&buf, "  %q -> %q;\n", "center", arcID)

		for j, l := range a.Layers {
			layerID := fmt.Sprintf("%s.layer%d", arcID, j)
			fmt.Fprintf(&buf, "  %q [%s];\n", layerID, strings.Join(attrs(layerLabel(l, opts.Detailed), l.Color, "box"), ", "))
			fmt.Fprintf(&buf, "  %q -> %q;\n", arcID, layerID)
			if opts.HideItems {
				continue
			}
			for k, item := range l.Items {
				itemID := fmt.Sprintf("%s.item%d", layerID, k)
				fmt.Fprintf(&buf, "  %q [%s];\n", itemID, strings.Join(attrs(item, "", "plaintext"), ", "))
				fmt.Fprintf(&buf, "  %q -> %q;\n", layerID, itemID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func centerLabel(t tree.Tree, detailed bool) string {
	if !detailed {
		return t.CenterName
	}
	s := t.CenterSpan()
	return fmt.Sprintf("%s\n[%g°, %g°]", t.CenterName, s[0], s[1])
}

func arcLabel(i int, a tree.Arc, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("arc %d", i)
	}
	return fmt.Sprintf("arc %d\n[%g°, %g°]", i, a.Angle[0], a.Angle[1])
}

func layerLabel(l tree.Layer, detailed bool) string {
	if !detailed {
		return l.Name
	}
	return fmt.Sprintf("%s\nitems: %d", l.Name, len(l.Items))
}

func attrs(label, color, shape string) []string {
	out := []string{fmt.Sprintf("label=%q", label)}
	if shape != "box" {
		out = append(out, "shape="+shape)
	}
	if color != "" {
		out = append(out, fmt.Sprintf("fillcolor=%q", color))
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and its pixel size matches the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
