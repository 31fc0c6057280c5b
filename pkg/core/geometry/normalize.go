package geometry

import (
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Normalize computes the flat ring and item layout of t.
//
// Normalize is pure: it never modifies t and returns fresh slices on every
// call, so equal inputs always produce equal outputs. Option values are
// checked first and reported as INVALID_CONFIG errors. With [WithStrict] a
// malformed tree yields a [*MalformedTreeError] and a padding at least as
// wide as the narrowest band is an INVALID_CONFIG error. Otherwise the
// result may contain rings without items, and bands narrower than the
// padding collapse to zero width at their outer radius.
func Normalize(t tree.Tree, opts ...Option) (Geometry, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := errors.ValidateFraction("center radius", cfg.centerRadius, 0, 1); err != nil {
		return Geometry{}, err
	}
	if cfg.centerRadius == 1 {
		return Geometry{}, errors.New(errors.ErrCodeInvalidConfig, "center radius must be below 1")
	}
	if err := errors.ValidateFraction("ring padding", cfg.padding, 0, 1-cfg.centerRadius); err != nil {
		return Geometry{}, err
	}
	if cfg.strict {
		if err := checkTree(t); err != nil {
			return Geometry{}, err
		}
		if err := checkPadding(t, cfg.centerRadius, cfg.padding); err != nil {
			return Geometry{}, err
		}
	}

	c := cfg.centerRadius
	g := Geometry{
		Rings: make([]RingSegment, 0, 1+t.LayerCount()),
		Items: make([]ItemSegment, 0, t.ItemCount()),
	}
	g.Rings = append(g.Rings, RingSegment{
		Name:   t.CenterName,
		Color:  t.Color,
		Angle:  span(t.CenterSpan()),
		Radius: [2]float64{0, c},
		Arc:    -1,
		Layer:  -1,
		Center: true,
	})

	for ai, a := range t.Arcs {
		bands := len(a.Layers)
		for li, l := range a.Layers {
			radius := band(c, cfg.padding, li, bands)
			ring := len(g.Rings)
			g.Rings = append(g.Rings, RingSegment{
				Name:   l.Name,
				Color:  l.Color,
				Angle:  span(a.Angle),
				Radius: radius,
				Arc:    ai,
				Layer:  li,
			})
			for idx, name := range l.Items {
				g.Items = append(g.Items, ItemSegment{
					Name:   name,
					Angle:  subdivide(a.Angle, idx, len(l.Items)),
					Radius: radius,
					Ring:   ring,
					Index:  len(g.Items),
				})
			}
		}
	}

	total := float64(len(g.Items))
	for i := range g.Items {
		g.Items[i].LinearScale = float64(i+1) / total
	}
	return g, nil
}

// band returns the radial span of layer i out of n, outside a center disc of
// radius c. The outermost band always ends at exactly 1, and the inner
// radius never passes the outer one.
func band(c, pad float64, i, n int) [2]float64 {
	width := 1 - c
	inner := c + float64(i)/float64(n)*width + pad
	outer := c + float64(i+1)/float64(n)*width
	if i == n-1 {
		outer = 1
	}
	return [2]float64{min(inner, outer), outer}
}

// checkPadding rejects a padding that would swallow the narrowest band of t.
func checkPadding(t tree.Tree, c, pad float64) error {
	layers := 0
	for _, a := range t.Arcs {
		layers = max(layers, len(a.Layers))
	}
	if layers == 0 {
		return nil
	}
	if narrowest := (1 - c) / float64(layers); pad >= narrowest {
		return errors.New(errors.ErrCodeInvalidConfig,
			"ring padding %g must be below the narrowest band width %g", pad, narrowest)
	}
	return nil
}

// subdivide returns the angular span of item idx out of n sharing s. The
// first item starts at s[0] and the last ends at s[1] exactly.
func subdivide(s tree.Span, idx, n int) [2]float64 {
	step := s.Width() / float64(n)
	start := s[0] + float64(idx)*step
	end := s[0] + float64(idx+1)*step
	if idx == 0 {
		start = s[0]
	}
	if idx == n-1 {
		end = s[1]
	}
	return [2]float64{start, end}
}
