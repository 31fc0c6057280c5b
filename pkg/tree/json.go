package tree

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func decodeJSON(data []byte) (Tree, error) {
	if err := ValidateJSON(data); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "tree does not match schema")
	}
	var t Tree
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json tree")
	}
	return t, nil
}

// WriteJSON encodes t as indented JSON. The output can be re-read with
// [Decode] and [FormatJSON].
func WriteJSON(t Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return nil
}

// Marshal returns the compact JSON encoding of t.
func Marshal(t Tree) ([]byte, error) {
	return json.Marshal(t)
}
