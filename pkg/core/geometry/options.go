package geometry

// Default layout parameters, as fractions of the chart radius.
const (
	DefaultCenterRadius = 1.0 / 6
	DefaultPadding      = 0.02
)

type config struct {
	centerRadius float64
	padding      float64
	strict       bool
}

func defaultConfig() config {
	return config{centerRadius: DefaultCenterRadius, padding: DefaultPadding}
}

// Option configures [Normalize].
type Option func(*config)

// WithCenterRadius sets the radius of the center disc. Must be in [0, 1).
func WithCenterRadius(r float64) Option {
	return func(c *config) { c.centerRadius = r }
}

// WithPadding sets the gap left at the inner edge of every layer band.
func WithPadding(p float64) Option {
	return func(c *config) { c.padding = p }
}

// WithStrict makes Normalize reject malformed trees instead of emitting
// degenerate segments.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}
