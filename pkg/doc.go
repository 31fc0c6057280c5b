// Package pkg provides the core libraries for Sunburst radial charts.
//
// # Overview
//
// Sunburst turns a layered tree (a center, arcs, layers and items) into a
// radial chart. The pkg directory is organized into these areas:
//
//  1. [tree] - The input model and its JSON, YAML and HCL decoders
//  2. [core] - Domain logic (geometry normalization, label placement)
//  3. [render] - Output (sector paths, SVG/PNG/PDF/JSON sinks, node-link view)
//  4. [pipeline] - Orchestration (parse → normalize → render) with caching
//  5. [server] - HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	tree file (JSON/YAML/HCL)
//	         ↓
//	    [tree] package (decode + structural checks)
//	         ↓
//	    [core/geometry] package (absolute ring and item segments)
//	         ↓
//	    [core/label] package (anchor + rotation per segment)
//	         ↓
//	    [render/sink] package
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	t, _ := tree.ImportFile("mission.yaml")
//	g, _ := geometry.Normalize(t)
//	svg := sink.RenderSVG(g, sink.WithSize(1200, 600))
//
// # Supporting Packages
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [config] - TOML configuration for chart defaults, cache and server.
//
// [errors] - Coded errors shared by every layer.
//
// [observability] - Hooks and tracing spans around pipeline stages.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/tree
// [core]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/core
// [core/geometry]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/core/geometry
// [core/label]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/core/label
// [render]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/observability
package pkg
