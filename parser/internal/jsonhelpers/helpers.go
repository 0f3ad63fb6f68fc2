// Package jsonhelpers provides helper functions for JSON marshaling and unmarshaling
// with support for extension fields (x-* properties) in OpenAPI documents.
//
// encoding/json has no equivalent of yaml:",inline" for maps, so the parser's
// object model routes extension fields through these helpers.
package jsonhelpers

import (
	"encoding/json"
	"maps"
)

// IsExtension reports whether key names a specification extension ("x-" prefix).
func IsExtension(key string) bool {
	return len(key) >= 2 && key[0] == 'x' && key[1] == '-'
}

// ExtractExtensions returns the x-* fields of a JSON object, or nil when there
// are none or data is not an object.
//
// Example:
//
//	func (i *Info) UnmarshalJSON(data []byte) error {
//	    type alias Info
//	    if err := json.Unmarshal(data, (*alias)(i)); err != nil {
//	        return err
//	    }
//	    i.Extra = jsonhelpers.ExtractExtensions(data)
//	    return nil
//	}
func ExtractExtensions(data []byte) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}

	var extra map[string]any
	for k, v := range m {
		if IsExtension(k) {
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}
	}
	return extra
}

// MarshalWithExtras marshals v and merges extras into the resulting top-level
// object. When extras is empty the plain encoding of v is returned unchanged.
func MarshalWithExtras(v any, extras map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extras) == 0 {
		return data, nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	maps.Copy(m, extras)
	return json.Marshal(m)
}
