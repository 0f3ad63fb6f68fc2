package parser

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/shigou0206/stepflow-test/oaserrors"
)

// structureMessage prefixes failures of the required-field check so they read
// apart from syntax errors in the same aggregate.
const structureMessage = "not an OpenAPI 3.0 document"

// yamlMarkRE matches the position yaml parser and scanner errors embed in
// their message ("yaml: line 3, column 7: ...").
var yamlMarkRE = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// newDecodeError records one codec's failure against data. The codec error is
// kept verbatim as Cause; Line and Column are filled in when the codec exposes
// a position.
func newDecodeError(format SourceFormat, data []byte, err error) *oaserrors.DecodeError {
	de := &oaserrors.DecodeError{
		Format: string(format),
		Cause:  err,
	}

	var syntaxErr *json.SyntaxError
	var loadErr *yaml.LoadError
	switch {
	case errors.As(err, &syntaxErr):
		de.Line, de.Column = offsetToLineCol(data, syntaxErr.Offset)
	case errors.As(err, &loadErr):
		de.Line, de.Column = loadErr.Line, loadErr.Column
	case format == SourceFormatYAML:
		if m := yamlMarkRE.FindStringSubmatch(err.Error()); m != nil {
			de.Line, _ = strconv.Atoi(m[1])
			if m[2] != "" {
				de.Column, _ = strconv.Atoi(m[2])
			}
		}
	}
	return de
}

// newStructureError records a document that decoded but failed the
// required-field check.
func newStructureError(format SourceFormat, err error) *oaserrors.DecodeError {
	return &oaserrors.DecodeError{
		Format:  string(format),
		Message: structureMessage,
		Cause:   err,
	}
}

// aggregate combines every failed attempt, in attempt order, into the single
// error returned to the caller. It never fails and keeps each codec's
// diagnostic untouched.
func aggregate(attempts []*oaserrors.DecodeError) *oaserrors.AggregateDecodeError {
	kept := make([]*oaserrors.DecodeError, 0, len(attempts))
	for _, a := range attempts {
		if a != nil {
			kept = append(kept, a)
		}
	}
	return &oaserrors.AggregateDecodeError{Attempts: kept}
}

// offsetToLineCol converts a byte offset into 1-based line and column numbers.
// encoding/json reports the offset just past the offending byte.
func offsetToLineCol(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	if offset <= 0 {
		return line, col
	}
	for _, b := range data[:offset-1] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
