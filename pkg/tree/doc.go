// Package tree defines the input model for sunburst charts and decodes it
// from JSON, YAML, or HCL.
//
// # Overview
//
// A [Tree] is a center node surrounded by arcs. Each [Arc] covers an angular
// [Span] and stacks one or more [Layer] bands outward from the center; each
// layer holds an ordered list of item names:
//
//	{
//	  "centerName": "Mission Critical Assets",
//	  "angle": [-90, 90],
//	  "color": "#009950",
//	  "arcs": [
//	    {
//	      "angle": [-90, -60],
//	      "layers": [
//	        {"name": "Policy", "color": "#5697d9", "items": ["a", "b"]}
//	      ]
//	    }
//	  ]
//	}
//
// Angles are degrees clockwise from vertical (0 = top) in the [-180, 180]
// convention. Arcs must not overlap; unassigned angular space stays blank.
//
// # Formats
//
// [ImportFile] picks a decoder from the file extension:
//
//   - .json: validated against the embedded JSON Schema, then decoded
//   - .yaml, .yml: same field names as JSON
//   - .hcl: center_name/angle/color attributes, "arc" blocks and labelled
//     "layer" blocks
//
// Use [Decode] or [Read] when the data does not come from a file.
//
// Decoding checks structure and colors only. Semantic checks (empty arcs,
// empty layers, overlapping spans) belong to the geometry normalizer, which
// can either reject or tolerate them.
package tree
