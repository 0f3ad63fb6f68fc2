package parser

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Codec deserializes one text format into Go values.
type Codec interface {
	// Format names the syntax this codec reads.
	Format() SourceFormat

	// Unmarshal deserializes data into v.
	Unmarshal(data []byte, v any) error
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Format returns SourceFormatJSON.
func (JSONCodec) Format() SourceFormat { return SourceFormatJSON }

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using go.yaml.in/yaml/v4.
type YAMLCodec struct{}

// Format returns SourceFormatYAML.
func (YAMLCodec) Format() SourceFormat { return SourceFormatYAML }

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

var _ Codec = YAMLCodec{}

// codecs lists every supported codec. attemptOrder tries the guessed one
// first and the rest in this order.
var codecs = []Codec{JSONCodec{}, YAMLCodec{}}

// CodecFor returns the codec for format.
func CodecFor(format SourceFormat) (Codec, error) {
	for _, c := range codecs {
		if c.Format() == format {
			return c, nil
		}
	}
	return nil, fmt.Errorf("parser: no codec for format %q", format)
}

// attemptOrder returns every codec with the one for guess first.
func attemptOrder(guess SourceFormat) []Codec {
	order := make([]Codec, 0, len(codecs))
	for _, c := range codecs {
		if c.Format() == guess {
			order = append(order, c)
		}
	}
	for _, c := range codecs {
		if c.Format() != guess {
			order = append(order, c)
		}
	}
	return order
}
