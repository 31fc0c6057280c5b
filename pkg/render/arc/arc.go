// Package arc generates annular sectors the way d3-shape's arc generator does:
// angles in radians, 0 at twelve o'clock, increasing clockwise, in a
// coordinate system whose y axis points down.
//
// It is the drawing half of the chart. [Arc.Path] emits SVG path data,
// [Arc.Polygon] approximates the sector for rasterizers and [Arc.Centroid]
// (also exposed as [Locator] for the label resolver) finds where labels go.
package arc

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sunburst/pkg/core/label"
)

const (
	epsilon = 1e-12
	tau     = 2 * math.Pi
)

// Arc is an annular sector. Radii are in output units (pixels).
type Arc struct {
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

// FromDegrees builds an Arc from angles in degrees.
func FromDegrees(inner, outer, startDeg, endDeg float64) Arc {
	return Arc{
		InnerRadius: inner,
		OuterRadius: outer,
		StartAngle:  Radians(startDeg),
		EndAngle:    Radians(endDeg),
	}
}

// FromSector converts a label sector to an Arc.
func FromSector(s label.Sector) Arc {
	return FromDegrees(s.InnerRadius, s.OuterRadius, s.StartAngle, s.EndAngle)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Point returns the position at radius r and angle theta.
func Point(r, theta float64) (x, y float64) {
	return r * math.Sin(theta), -r * math.Cos(theta)
}

// Centroid returns the midpoint of the sector's angular and radial spans.
// It matches d3's arc.centroid and is not the true center of mass.
func (a Arc) Centroid() (x, y float64) {
	r := (a.InnerRadius + a.OuterRadius) / 2
	theta := (a.StartAngle + a.EndAngle) / 2
	return Point(r, theta)
}

// Path returns SVG path data for the sector. A zero inner radius yields a
// pie wedge; a span of a full turn or more yields a ring.
func (a Arc) Path() string {
	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	if r1 <= epsilon {
		return "M0,0Z"
	}

	a0, a1 := a.StartAngle, a.EndAngle
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	var p pathBuilder
	if da > tau-epsilon {
		// Two half turns, since a single SVG arc cannot close on itself.
		x, y := Point(r1, a0)
		p.move(x, y)
		p.arc(r1, true, cw, -x, -y)
		p.arc(r1, true, cw, x, y)
		if r0 > epsilon {
			x, y = Point(r0, a1)
			p.move(x, y)
			p.arc(r0, true, !cw, -x, -y)
			p.arc(r0, true, !cw, x, y)
		}
		p.close()
		return p.String()
	}

	large := da >= math.Pi
	p.move(Point(r1, a0))
	x, y := Point(r1, a1)
	p.arc(r1, large, cw, x, y)
	if r0 > epsilon {
		p.line(Point(r0, a1))
		x, y = Point(r0, a0)
		p.arc(r0, large, !cw, x, y)
	} else {
		p.line(0, 0)
	}
	p.close()
	return p.String()
}

// Polygon approximates the sector outline with straight segments no longer
// than maxStep radians along each edge. The outer edge runs from start to
// end, the inner edge back again; a pie wedge closes through the origin.
func (a Arc) Polygon(maxStep float64) [][2]float64 {
	if maxStep <= 0 {
		maxStep = Radians(2)
	}
	span := a.EndAngle - a.StartAngle
	n := max(1, int(math.Ceil(math.Abs(span)/maxStep)))

	pts := make([][2]float64, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		x, y := Point(a.OuterRadius, a.StartAngle+span*float64(i)/float64(n))
		pts = append(pts, [2]float64{x, y})
	}
	if a.InnerRadius <= epsilon {
		return append(pts, [2]float64{0, 0})
	}
	for i := n; i >= 0; i-- {
		x, y := Point(a.InnerRadius, a.StartAngle+span*float64(i)/float64(n))
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

// Locator finds label anchors with [Arc.Centroid].
type Locator struct{}

// Centroid implements [label.CentroidLocator].
func (Locator) Centroid(s label.Sector) (x, y float64) {
	return FromSector(s).Centroid()
}

type pathBuilder struct {
	strings.Builder
}

func (p *pathBuilder) move(x, y float64) {
	p.WriteByte('M')
	p.pair(x, y)
}

func (p *pathBuilder) line(x, y float64) {
	p.WriteByte('L')
	p.pair(x, y)
}

func (p *pathBuilder) arc(r float64, large, sweep bool, x, y float64) {
	p.WriteByte('A')
	p.WriteString(Format(r))
	p.WriteByte(',')
	p.WriteString(Format(r))
	p.WriteString(",0,")
	p.flag(large)
	p.WriteByte(',')
	p.flag(sweep)
	p.WriteByte(',')
	p.pair(x, y)
}

func (p *pathBuilder) close() { p.WriteByte('Z') }

func (p *pathBuilder) pair(x, y float64) {
	p.WriteString(Format(x))
	p.WriteByte(',')
	p.WriteString(Format(y))
}

func (p *pathBuilder) flag(b bool) {
	if b {
		p.WriteByte('1')
	} else {
		p.WriteByte('0')
	}
}

// Format writes v with at most three decimals and no trailing zeros.
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
