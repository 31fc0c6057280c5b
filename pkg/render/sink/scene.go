package sink

import (
	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/core/label"
	"github.com/matzehuels/sunburst/pkg/render/arc"
)

// Fallback fills for rings without a color.
const (
	defaultCenterColor = "#ffffff"
	defaultRingColor   = "#d9d9d9"
)

// Frame maps chart units to canvas pixels.
type Frame struct {
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	// Scale is the length of one radius unit in pixels.
	Scale float64 `json:"scale"`
}

// NewFrame picks the frame for a chart whose center ring spans center.
func NewFrame(center [2]float64, width, height int) Frame {
	w, h := float64(width), float64(height)
	if center[0] >= -90 && center[1] <= 90 {
		return Frame{OriginX: w / 2, OriginY: h, Scale: h}
	}
	return Frame{OriginX: w / 2, OriginY: h / 2, Scale: min(w, h) / 2}
}

// Sector is a filled ring sector ready to draw, in frame-relative pixels.
type Sector struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Arc   arc.Arc `json:"-"`
	Path  string  `json:"path"`
}

// Text is a placed label. FontSize is in pixels.
type Text struct {
	Text      string          `json:"text"`
	Placement label.Placement `json:"placement"`
	FontSize  float64         `json:"fontSize"`
}

// Scene is everything a sink draws, in draw order. Coordinates are relative
// to the frame origin.
type Scene struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Title      string   `json:"title,omitempty"`
	Frame      Frame    `json:"frame"`
	Rings      []Sector `json:"rings"`
	RingLabels []Text   `json:"ringLabels"`
	Outlines   []Sector `json:"outlines,omitempty"`
	ItemLabels []Text   `json:"itemLabels"`
}

// BuildScene resolves paths and label placements for g.
func BuildScene(g geometry.Geometry, opts ...Option) Scene {
	return buildScene(g, newConfig(opts...))
}

func buildScene(g geometry.Geometry, c config) Scene {
	center := [2]float64{-180, 180}
	if len(g.Rings) > 0 {
		center = g.Rings[0].Angle
	}
	f := NewFrame(center, c.width, c.height)
	h := float64(c.height)
	s := Scene{
		Width:      c.width,
		Height:     c.height,
		Title:      c.title,
		Frame:      f,
		Rings:      make([]Sector, 0, len(g.Rings)),
		RingLabels: make([]Text, 0, len(g.Rings)),
		ItemLabels: make([]Text, 0, len(g.Items)),
	}

	for _, r := range g.Rings {
		a := arc.FromDegrees(r.Radius[0]*f.Scale, r.Radius[1]*f.Scale, r.Angle[0], r.Angle[1])
		s.Rings = append(s.Rings, Sector{Name: r.Name, Color: ringColor(r), Arc: a, Path: a.Path()})
		s.RingLabels = append(s.RingLabels, Text{
			Text:      r.Name,
			Placement: c.resolver.Place(label.RingSector(r, f.Scale), c.labelNudge, h),
			FontSize:  c.labelFontScale * h,
		})
	}

	for _, it := range g.Items {
		if c.debug {
			a := arc.FromDegrees(it.Radius[0]*f.Scale, it.Radius[1]*f.Scale, it.Angle[0], it.Angle[1])
			s.Outlines = append(s.Outlines, Sector{Name: it.Name, Color: "red", Arc: a, Path: a.Path()})
		}
		s.ItemLabels = append(s.ItemLabels, Text{
			Text:      it.Name,
			Placement: c.resolver.Place(label.ItemSector(it, f.Scale), c.itemNudge, h),
			FontSize:  c.itemFontScale * h,
		})
	}
	return s
}

func ringColor(r geometry.RingSegment) string {
	switch {
	case r.Color != "":
		return r.Color
	case r.Center:
		return defaultCenterColor
	default:
		return defaultRingColor
	}
}
