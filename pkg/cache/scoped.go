package cache

// ScopedKeyer wraps a Keyer with a prefix so several front ends can share one
// backend without colliding, for example the CLI and the HTTP server on a
// single Redis instance.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GeometryKey generates a prefixed key for geometry caching.
func (k *ScopedKeyer) GeometryKey(treeHash string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(treeHash string, geom GeometryKeyOpts, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, geom, opts)
}
