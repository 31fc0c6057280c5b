package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/arc"
)

const (
	strokeWidth = 1.0
	// polygonStep bounds the angle covered by one polygon edge.
	polygonStep = math.Pi / 180
)

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

func loadBold() (*opentype.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

// RenderPNG rasterizes g. Labels use the Go Bold typeface.
func RenderPNG(g geometry.Geometry, opts ...Option) ([]byte, error) {
	img, err := rasterize(buildScene(g, newConfig(opts...)))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func rasterize(s Scene) (*image.RGBA, error) {
	if err := CheckSize(s.Width, s.Height); err != nil {
		return nil, err
	}
	fnt, err := loadBold()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}

	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	p := painter{
		img:   img,
		z:     vector.NewRasterizer(s.Width, s.Height),
		ox:    s.Frame.OriginX,
		oy:    s.Frame.OriginY,
		faces: map[float64]font.Face{},
		font:  fnt,
	}
	defer p.close()

	for _, r := range s.Rings {
		p.outline(r.Arc, color.Black)
		p.fill(inset(r.Arc, strokeWidth/2), parseColor(r.Color))
	}
	if err := p.labels(s.RingLabels); err != nil {
		return nil, err
	}
	for _, o := range s.Outlines {
		p.outline(o.Arc, color.RGBA{R: 0xff, A: 0xff})
	}
	if err := p.labels(s.ItemLabels); err != nil {
		return nil, err
	}
	return img, nil
}

type painter struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	ox, oy float64
	font   *opentype.Font
	faces  map[float64]font.Face
}

func (p *painter) close() {
	for _, f := range p.faces {
		f.Close()
	}
}

// rasterizer clears and returns the shared rasterizer.
func (p *painter) rasterizer() *vector.Rasterizer {
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	return p.z
}

func (p *painter) trace(z *vector.Rasterizer, pts [][2]float64) {
	for i, pt := range pts {
		x, y := float32(p.ox+pt[0]), float32(p.oy+pt[1])
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func (p *painter) fill(a arc.Arc, c color.Color) {
	z := p.rasterizer()
	p.trace(z, a.Polygon(polygonStep))
	z.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
}

// outline strokes the sector edge by filling the band between a and a copy
// inset by the stroke width. The inner contour is traced backwards so the
// two windings cancel.
func (p *painter) outline(a arc.Arc, c color.Color) {
	z := p.rasterizer()
	p.trace(z, a.Polygon(polygonStep))
	in := inset(a, strokeWidth)
	if in.OuterRadius > in.InnerRadius && in.EndAngle > in.StartAngle {
		pts := in.Polygon(polygonStep)
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
		p.trace(z, pts)
	}
	z.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (p *painter) face(size float64) (font.Face, error) {
	size = math.Round(size*4) / 4
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "font face %gpx", size)
	}
	p.faces[size] = f
	return f, nil
}

// labels draws each text into a scratch image, then maps it onto the canvas
// so that the middle of its baseline lands on the placement point, rotated
// like the SVG transform.
func (p *painter) labels(texts []Text) error {
	for _, t := range texts {
		if t.Text == "" || t.FontSize <= 0 {
			continue
		}
		face, err := p.face(t.FontSize)
		if err != nil {
			return err
		}
		m := face.Metrics()
		width := font.MeasureString(face, t.Text).Ceil()
		ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
		if width == 0 {
			continue
		}

		src := image.NewRGBA(image.Rect(0, 0, width, ascent+descent))
		d := font.Drawer{Dst: src, Src: image.Black, Face: face, Dot: fixed.P(0, ascent)}
		d.DrawString(t.Text)

		theta := t.Placement.Rotation * math.Pi / 180
		sin, cos := math.Sincos(theta)
		ax, ay := float64(width)/2, float64(ascent)
		x, y := p.ox+t.Placement.X, p.oy+t.Placement.Y
		s2d := f64.Aff3{
			cos, -sin, x - (cos*ax - sin*ay),
			sin, cos, y - (sin*ax + cos*ay),
		}
		draw.ApproxBiLinear.Transform(p.img, s2d, src, src.Bounds(), draw.Over, nil)
	}
	return nil
}

// inset shrinks a sector by d pixels on every side.
func inset(a arc.Arc, d float64) arc.Arc {
	out := arc.Arc{
		InnerRadius: a.InnerRadius,
		OuterRadius: a.OuterRadius - d,
		StartAngle:  a.StartAngle,
		EndAngle:    a.EndAngle,
	}
	if a.InnerRadius > 0 {
		out.InnerRadius += d
	}
	if a.EndAngle-a.StartAngle < 2*math.Pi && out.OuterRadius > 0 {
		da := d / out.OuterRadius
		out.StartAngle += da
		out.EndAngle -= da
	}
	return out
}

// parseColor accepts #rgb, #rrggbb and CSS color names. Anything else is
// drawn grey.
func parseColor(s string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return colornames.Lightgray
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return colornames.Lightgray
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return colornames.Lightgray
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
