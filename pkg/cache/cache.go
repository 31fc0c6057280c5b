// Package cache stores computed geometry and rendered artifacts.
//
// Normalization is cheap, but rendering PNGs, PDFs and Graphviz diagrams is
// not, and the HTTP server often sees the same tree many times. Entries are
// keyed by a hash of the canonical tree JSON plus the options that affect
// the output, so identical requests hit the cache regardless of key order
// or whitespace in the input.
//
// Backends:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for `sunburst serve`
//   - [NullCache]: never stores anything
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLGeometry = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GeometryKeyOpts are the normalization options that change the geometry.
type GeometryKeyOpts struct {
	CenterRadius float64 `json:"center_radius"`
	Padding      float64 `json:"padding"`
	Strict       bool    `json:"strict"`
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	VizType        string  `json:"viz_type"`
	Format         string  `json:"format"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Debug          bool    `json:"debug,omitempty"`
	Threshold      float64 `json:"threshold,omitempty"`
	LabelFontScale float64 `json:"label_font_scale,omitempty"`
	ItemFontScale  float64 `json:"item_font_scale,omitempty"`
	LabelNudge     float64 `json:"label_nudge,omitempty"`
	ItemNudge      float64 `json:"item_nudge,omitempty"`
	Title          string  `json:"title,omitempty"`
	Detailed       bool    `json:"detailed,omitempty"`
	HideItems      bool    `json:"hide_items,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	GeometryKey(treeHash string, opts GeometryKeyOpts) string
	ArtifactKey(treeHash string, geom GeometryKeyOpts, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GeometryKey returns "geometry:<hash>".
func (DefaultKeyer) GeometryKey(treeHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", treeHash, opts)
}

// ArtifactKey returns "artifact:<hash>". Artifacts depend on the geometry
// options too, so both are part of the key.
func (DefaultKeyer) ArtifactKey(treeHash string, geom GeometryKeyOpts, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, geom, opts)
}
