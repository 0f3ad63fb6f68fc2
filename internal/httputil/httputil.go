// Package httputil holds the HTTP method and response key rules used when
// checking and listing OpenAPI 3.0 operations.
package httputil

import (
	"strconv"
	"strings"
)

// Path item method keys, lower case as they appear in documents.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the operation methods of a path item in the order endpoints
// are reported.
var Methods = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodHead,
	MethodOptions,
	MethodTrace,
}

// IsMethod reports whether m (any case) names a path item operation.
func IsMethod(m string) bool {
	m = strings.ToLower(m)
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// IsResponseKey reports whether key may appear in a Responses object:
// "default", a status code from 100 to 599, a range such as "4XX", or an
// "x-" extension.
func IsResponseKey(key string) bool {
	switch {
	case key == "default", strings.HasPrefix(key, "x-"):
		return true
	case len(key) != 3:
		return false
	case key[1:] == "XX":
		return key[0] >= '1' && key[0] <= '5'
	}
	code, err := strconv.Atoi(key)
	return err == nil && key[0] != '+' && key[0] != '-' && code >= 100 && code <= 599
}
