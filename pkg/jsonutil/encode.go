package jsonutil

import (
	"bytes"
	"encoding/json"
	"io"
)

// Marshal encodes v without HTML escaping and without a trailing newline,
// a non empty indent pretty prints the output
func Marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes v to w followed by a newline. Nothing is written when
// encoding fails.
func Write(w io.Writer, v any, indent string) error {
	data, err := Marshal(v, indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
