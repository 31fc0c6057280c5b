package pipeline

import (
	"github.com/matzehuels/sunburst/pkg/tree"
)

// ParseFile decodes the tree stored at path. The encoding is chosen from the
// file extension.
func ParseFile(path string) (tree.Tree, error) {
	return tree.ImportFile(path)
}

// ParseBytes decodes a tree given the name of its encoding ("json", "yaml",
// "yml" or "hcl").
func ParseBytes(data []byte, format string) (tree.Tree, error) {
	f, err := tree.ParseFormat(format)
	if err != nil {
		return tree.Tree{}, err
	}
	return tree.Decode(data, f)
}
