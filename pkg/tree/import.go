package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Format identifies a tree encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer tree format from %q (want .json, .yaml, .yml or .hcl)", path)
	}
}

// ParseFormat maps a user-supplied name ("json", "yaml", "yml", "hcl") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown tree format: %q", s)
	}
}

// ImportFile reads and decodes the tree stored at path, choosing the decoder
// from the file extension.
func ImportFile(path string) (Tree, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Tree{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Tree{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Tree{}, errors.New(errors.ErrCodeFileNotFound, "tree file not found: %s", path)
	}
	if err != nil {
		return Tree{}, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := Decode(data, format)
	if err != nil {
		return Tree{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read decodes a tree of the given format from r. Read does not close r.
func Read(r io.Reader, format Format) (Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Tree{}, fmt.Errorf("read tree: %w", err)
	}
	return Decode(data, format)
}

// Decode decodes a tree of the given format and checks its colors.
func Decode(data []byte, format Format) (Tree, error) {
	var (
		t   Tree
		err error
	)
	switch format {
	case FormatJSON:
		t, err = decodeJSON(data)
	case FormatYAML:
		t, err = decodeYAML(data)
	case FormatHCL:
		t, err = decodeHCL(data)
	default:
		return Tree{}, errors.New(errors.ErrCodeInvalidFormat, "unknown tree format: %q", format)
	}
	if err != nil {
		return Tree{}, err
	}
	if err := checkColors(t); err != nil {
		return Tree{}, err
	}
	return t, nil
}

func checkColors(t Tree) error {
	if err := errors.ValidateColor(t.Color); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "center %q", t.CenterName)
	}
	for i, a := range t.Arcs {
		for j, l := range a.Layers {
			if err := errors.ValidateColor(l.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "arc %d layer %d (%q)", i, j, l.Name)
			}
		}
	}
	return nil
}
