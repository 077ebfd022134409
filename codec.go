package rating

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec decodes a props document into Props.
// Implement this interface to read props from other formats.
type Codec interface {
	// Decode parses a single props document.
	Decode(data []byte) (Props, error)

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec decodes JSON props documents.
// Numbers are kept exact until they are read as values.
type JSONCodec struct{}

// Decode parses a JSON props document.
func (JSONCodec) Decode(data []byte) (Props, error) {
	var p Props
	if len(bytes.TrimSpace(data)) == 0 {
		return p, ErrEmptyProps
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return Props{}, fmt.Errorf("json: %w", err)
	}
	return p, nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec decodes YAML props documents using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Decode parses a YAML props document.
func (YAMLCodec) Decode(data []byte) (Props, error) {
	var p Props
	if len(bytes.TrimSpace(data)) == 0 {
		return p, ErrEmptyProps
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Props{}, fmt.Errorf("yaml: %w", err)
	}
	return p, nil
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}
