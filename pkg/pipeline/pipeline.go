// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP server.
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a tree from JSON, YAML or HCL
//  2. Normalize: compute ring and item geometry
//  3. Render: generate artifacts (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Normalization and rendering are cached through a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	t, err := pipeline.ParseFile("chart.yaml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, t, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/core/label"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and config files
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultThreshold is the angle in degrees past which labels rotate.
	DefaultThreshold = label.DefaultThreshold

	// VerifyTolerance is the absolute tolerance used when Options.Verify is set.
	VerifyTolerance = 1e-9
)

// Visualization types.
const (
	VizTypeSunburst = "sunburst"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSunburst

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSunburst: true,
	VizTypeNodelink: true,
}

// nodelinkFormats are the formats Graphviz output can be produced in.
var nodelinkFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// It is decoded from API requests (JSON) and config files (TOML).
//
// CenterRadius and Padding are pointers because zero is a meaningful value
// for both; nil selects the default. For every other numeric field zero
// selects the default.
type Options struct {
	// Normalize options
	CenterRadius *float64 `json:"center_radius,omitempty" toml:"center_radius"`
	Padding      *float64 `json:"padding,omitempty" toml:"padding"`
	Strict       bool     `json:"strict,omitempty" toml:"strict"`
	Verify       bool     `json:"verify,omitempty" toml:"verify"`

	// Render options
	VizType        string   `json:"viz_type,omitempty" toml:"viz_type"`
	Formats        []string `json:"formats,omitempty" toml:"formats"`
	Width          int      `json:"width,omitempty" toml:"width"`
	Height         int      `json:"height,omitempty" toml:"height"`
	Debug          bool     `json:"debug,omitempty" toml:"debug"`
	Threshold      float64  `json:"threshold,omitempty" toml:"threshold"`
	LabelFontScale float64  `json:"label_font_scale,omitempty" toml:"label_font_scale"`
	ItemFontScale  float64  `json:"item_font_scale,omitempty" toml:"item_font_scale"`
	LabelNudge     float64  `json:"label_nudge,omitempty" toml:"label_nudge"`
	ItemNudge      float64  `json:"item_nudge,omitempty" toml:"item_nudge"`
	Title          string   `json:"title,omitempty" toml:"title"`

	// Nodelink options
	Detailed  bool `json:"detailed,omitempty" toml:"detailed"`
	HideItems bool `json:"hide_items,omitempty" toml:"hide_items"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// TreeHash is the content hash of the canonical tree JSON.
	TreeHash string

	// Geometry is the normalized layout.
	Geometry geometry.Geometry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RingCount     int
	ItemCount     int
	NormalizeTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GeometryHit bool // Whether the geometry came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetNormalizeDefaults fills in normalization defaults.
func (o *Options) SetNormalizeDefaults() {
	if o.CenterRadius == nil {
		c := geometry.DefaultCenterRadius
		o.CenterRadius = &c
	}
	if o.Padding == nil {
		p := geometry.DefaultPadding
		o.Padding = &p
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForNormalize sets defaults and checks normalization options.
func (o *Options) ValidateForNormalize() error {
	o.SetNormalizeDefaults()
	if err := errors.ValidateFraction("center_radius", *o.CenterRadius, 0, 1); err != nil {
		return err
	}
	if *o.CenterRadius == 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "center_radius must be below 1")
	}
	return errors.ValidateFraction("padding", *o.Padding, 0, 1-*o.CenterRadius)
}

// SetRenderDefaults fills in render defaults.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.LabelFontScale == 0 {
		o.LabelFontScale = sink.DefaultLabelFontScale
	}
	if o.ItemFontScale == 0 {
		o.ItemFontScale = sink.DefaultItemFontScale
	}
	if o.LabelNudge == 0 {
		o.LabelNudge = sink.DefaultLabelNudge
	}
	if o.ItemNudge == 0 {
		o.ItemNudge = sink.DefaultItemNudge
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and checks render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsNodelink() {
		for _, f := range o.Formats {
			if !nodelinkFormats[f] {
				return errors.New(errors.ErrCodeUnsupported, "nodelink diagrams cannot be rendered as %s", f)
			}
		}
	}
	if err := sink.CheckSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateFraction("threshold", o.Threshold, 0, 180); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"label_font_scale", o.LabelFontScale},
		{"item_font_scale", o.ItemFontScale},
		{"label_nudge", o.LabelNudge},
		{"item_nudge", o.ItemNudge},
	} {
		if err := errors.ValidateFraction(f.name, f.v, 0, 1); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks and fills in every option.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForNormalize(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// IsSunburst returns true if this is a sunburst chart.
func (o *Options) IsSunburst() bool {
	return o.VizType == "" || o.VizType == VizTypeSunburst
}

// IsNodelink returns true if this is a node-link diagram.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// GeometryOptions converts normalization settings to geometry options.
func (o *Options) GeometryOptions() []geometry.Option {
	opts := []geometry.Option{geometry.WithStrict(o.Strict)}
	if o.CenterRadius != nil {
		opts = append(opts, geometry.WithCenterRadius(*o.CenterRadius))
	}
	if o.Padding != nil {
		opts = append(opts, geometry.WithPadding(*o.Padding))
	}
	return opts
}

// SinkOptions converts render settings to sunburst sink options.
func (o *Options) SinkOptions() []sink.Option {
	opts := []sink.Option{
		sink.WithSize(o.Width, o.Height),
		sink.WithDebugOutlines(o.Debug),
		sink.WithTitle(o.Title),
	}
	if o.Threshold != 0 {
		opts = append(opts, sink.WithThreshold(o.Threshold))
	}
	if o.LabelFontScale != 0 && o.ItemFontScale != 0 {
		opts = append(opts, sink.WithFontScales(o.LabelFontScale, o.ItemFontScale))
	}
	if o.LabelNudge != 0 && o.ItemNudge != 0 {
		opts = append(opts, sink.WithNudges(o.LabelNudge, o.ItemNudge))
	}
	return opts
}

// NodelinkOptions converts render settings to node-link options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, HideItems: o.HideItems}
}

// GeometryKeyOpts returns cache key options for normalization.
func (o *Options) GeometryKeyOpts() cache.GeometryKeyOpts {
	k := cache.GeometryKeyOpts{Strict: o.Strict}
	if o.CenterRadius != nil {
		k.CenterRadius = *o.CenterRadius
	}
	if o.Padding != nil {
		k.Padding = *o.Padding
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		VizType: o.VizType,
		Format:  format,
	}
	if o.IsNodelink() {
		k.Detailed = o.Detailed
		k.HideItems = o.HideItems
		return k
	}
	k.Width = o.Width
	k.Height = o.Height
	k.Debug = o.Debug
	k.Threshold = o.Threshold
	k.LabelFontScale = o.LabelFontScale
	k.ItemFontScale = o.ItemFontScale
	k.LabelNudge = o.LabelNudge
	k.ItemNudge = o.ItemNudge
	k.Title = o.Title
	return k
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}
