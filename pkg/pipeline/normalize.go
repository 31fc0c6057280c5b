package pipeline

import (
	stderrors "errors"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// Normalize computes the geometry of t without caching.
//
// Malformed trees (strict mode only) are reported with code MALFORMED_TREE;
// the [*geometry.MalformedTreeError] stays reachable through errors.As.
func Normalize(t tree.Tree, opts Options) (geometry.Geometry, error) {
	g, err := geometry.Normalize(t, opts.GeometryOptions()...)
	if err != nil {
		var mt *geometry.MalformedTreeError
		if stderrors.As(err, &mt) {
			return geometry.Geometry{}, errors.Wrap(errors.ErrCodeMalformedTree, mt, "malformed tree")
		}
		return geometry.Geometry{}, err
	}
	if opts.Verify {
		if err := geometry.Verify(g, t, VerifyTolerance); err != nil {
			return geometry.Geometry{}, err
		}
	}
	return g, nil
}
