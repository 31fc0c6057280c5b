package label

import (
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
)

// DefaultThreshold is the angle in degrees past which labels are rotated.
const DefaultThreshold = 60.0

// Sector is an annular sector in chart space. Angles are degrees clockwise
// from vertical; radii are pixels.
type Sector struct {
	StartAngle  float64
	EndAngle    float64
	InnerRadius float64
	OuterRadius float64
}

// CentroidLocator finds the point where a sector's label is anchored.
type CentroidLocator interface {
	Centroid(s Sector) (x, y float64)
}

// LocatorFunc adapts a function to [CentroidLocator].
type LocatorFunc func(s Sector) (x, y float64)

// Centroid calls f(s).
func (f LocatorFunc) Centroid(s Sector) (x, y float64) { return f(s) }

// Placement is a resolved label position.
type Placement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Transform returns the placement as an SVG transform attribute value.
// The rotate step is omitted for horizontal labels.
func (p Placement) Transform() string {
	var b strings.Builder
	b.WriteString("translate(")
	b.WriteString(num(p.X))
	b.WriteByte(',')
	b.WriteString(num(p.Y))
	b.WriteByte(')')
	if p.Rotation != 0 {
		b.WriteString(" rotate(")
		b.WriteString(num(p.Rotation))
		b.WriteByte(')')
	}
	return b.String()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Resolver places labels. The zero value is not usable; build one with
// [NewResolver] or set Locator explicitly.
type Resolver struct {
	// ThresholdDegrees is compared against sector angles with >= and <=.
	ThresholdDegrees float64
	Locator          CentroidLocator
}

// NewResolver returns a resolver using loc and [DefaultThreshold].
func NewResolver(loc CentroidLocator) Resolver {
	return Resolver{ThresholdDegrees: DefaultThreshold, Locator: loc}
}

// Place anchors a label at the centroid of s, moved down by
// nudge·chartHeight pixels.
func (r Resolver) Place(s Sector, nudge, chartHeight float64) Placement {
	x, y := r.Locator.Centroid(s)
	return Placement{
		X:        x,
		Y:        y + nudge*chartHeight,
		Rotation: Rotation(s.StartAngle, s.EndAngle, r.ThresholdDegrees),
	}
}

// Rotation returns the label rotation in degrees for a sector spanning
// [a0, a1].
func Rotation(a0, a1, threshold float64) float64 {
	mid := (a0 + a1) / 2
	switch {
	case a0 >= threshold:
		return mid - 90
	case a1 <= -threshold:
		return mid + 90
	default:
		return 0
	}
}

// RingSector is the sector used for a ring's name: the inner half of the
// ring, so the label sits closer to the center than the items do.
func RingSector(r geometry.RingSegment, scale float64) Sector {
	inner := r.Radius[0]
	mid := inner + (r.Radius[1]-inner)/2
	return Sector{
		StartAngle:  r.Angle[0],
		EndAngle:    r.Angle[1],
		InnerRadius: inner * scale,
		OuterRadius: mid * scale,
	}
}

// ItemSector is the full sector of an item.
func ItemSector(it geometry.ItemSegment, scale float64) Sector {
	return Sector{
		StartAngle:  it.Angle[0],
		EndAngle:    it.Angle[1],
		InnerRadius: it.Radius[0] * scale,
		OuterRadius: it.Radius[1] * scale,
	}
}
