package tree

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func decodeYAML(data []byte) (Tree, error) {
	var t Tree
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml tree")
	}
	return t, nil
}

// WriteYAML returns t encoded as YAML with the same field names as JSON.
func WriteYAML(t Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
