package sink

import (
	"github.com/matzehuels/sunburst/pkg/core/label"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/arc"
)

// Default canvas and typography settings. Font sizes and nudges are
// fractions of the canvas height.
const (
	DefaultWidth          = 1200
	DefaultHeight         = 600
	DefaultLabelFontScale = 0.025
	DefaultItemFontScale  = 0.02
	DefaultLabelNudge     = 1.0 / 80
	DefaultItemNudge      = 1.0 / 100
)

// Canvas limits. Every PNG allocates width·height pixels, so requests from
// the network must stay below these.
const (
	MaxCanvasEdge   = 16384
	MaxCanvasPixels = 1 << 26
)

// CheckSize reports an INVALID_CONFIG error when a width×height canvas is
// negative or exceeds [MaxCanvasEdge] or [MaxCanvasPixels]. Zero means
// the default size.
func CheckSize(width, height int) error {
	if width < 0 || height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasEdge || height > MaxCanvasEdge {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %dx%d exceeds the %dpx edge limit", width, height, MaxCanvasEdge)
	}
	if width*height > MaxCanvasPixels {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %dx%d exceeds %d pixels", width, height, MaxCanvasPixels)
	}
	return nil
}

// Option configures a render.
type Option func(*config)

type config struct {
	width, height  int
	debug          bool
	resolver       label.Resolver
	labelFontScale float64
	itemFontScale  float64
	labelNudge     float64
	itemNudge      float64
	title          string
}

func newConfig(opts ...Option) config {
	c := config{
		width:          DefaultWidth,
		height:         DefaultHeight,
		resolver:       label.NewResolver(arc.Locator{}),
		labelFontScale: DefaultLabelFontScale,
		itemFontScale:  DefaultItemFontScale,
		labelNudge:     DefaultLabelNudge,
		itemNudge:      DefaultItemNudge,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.resolver.Locator == nil {
		c.resolver.Locator = arc.Locator{}
	}
	return c
}

// WithSize sets the canvas size in pixels. Non-positive values keep the
// default.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithDebugOutlines draws a red outline around every item sector.
func WithDebugOutlines(on bool) Option {
	return func(c *config) { c.debug = on }
}

// WithResolver replaces the label resolver.
func WithResolver(r label.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithThreshold sets the angle past which labels rotate.
func WithThreshold(deg float64) Option {
	return func(c *config) { c.resolver.ThresholdDegrees = deg }
}

// WithFontScales sets ring and item font sizes as fractions of the canvas
// height.
func WithFontScales(ringLabel, item float64) Option {
	return func(c *config) {
		c.labelFontScale = ringLabel
		c.itemFontScale = item
	}
}

// WithNudges sets how far ring and item labels are moved down, as fractions
// of the canvas height.
func WithNudges(ringLabel, item float64) Option {
	return func(c *config) {
		c.labelNudge = ringLabel
		c.itemNudge = item
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}
