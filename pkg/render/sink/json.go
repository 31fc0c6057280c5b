package sink

import (
	"encoding/json"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
)

type jsonOutput struct {
	Geometry geometry.Geometry `json:"geometry"`
	Scene    Scene             `json:"scene"`
}

// RenderJSON returns g together with its resolved scene as indented JSON.
func RenderJSON(g geometry.Geometry, opts ...Option) ([]byte, error) {
	out := jsonOutput{Geometry: g, Scene: buildScene(g, newConfig(opts...))}
	return json.MarshalIndent(out, "", "  ")
}
