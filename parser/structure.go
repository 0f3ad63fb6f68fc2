package parser

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shigou0206/stepflow-test/internal/httputil"
)

// checkStructure reports the fields an OpenAPI 3.0 document must carry that
// doc is missing. It only looks at shape: a document passing it can still be
// semantically invalid.
//
// All problems are joined into one error, ordered by path so the message is
// stable across runs.
func checkStructure(doc *Document) error {
	var errs []error

	switch {
	case doc.OpenAPI == "":
		errs = append(errs, missingField("openapi"))
	default:
		v, err := parseVersion(doc.OpenAPI)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid 'openapi' value %q: %w", doc.OpenAPI, err))
		} else if v.major != 3 {
			errs = append(errs, fmt.Errorf("invalid 'openapi' value %q: major version must be 3", doc.OpenAPI))
		}
	}

	errs = append(errs, checkInfo(doc.Info)...)

	if doc.Paths == nil {
		errs = append(errs, missingField("paths"))
	} else {
		errs = append(errs, checkPaths(doc.Paths)...)
	}

	errs = append(errs, checkServers("servers", doc.Servers)...)
	for i, tag := range doc.Tags {
		if tag == nil || tag.Name == "" {
			errs = append(errs, missingField(fmt.Sprintf("tags[%d].name", i)))
		}
	}
	if doc.ExternalDocs != nil && doc.ExternalDocs.URL == "" {
		errs = append(errs, missingField("externalDocs.url"))
	}

	return errors.Join(errs...)
}

func missingField(path string) error {
	return fmt.Errorf("missing required field '%s'", path)
}

func checkInfo(info *Info) []error {
	if info == nil {
		return []error{missingField("info")}
	}
	var errs []error
	if info.Title == "" {
		errs = append(errs, missingField("info.title"))
	}
	if info.Version == "" {
		errs = append(errs, missingField("info.version"))
	}
	if info.License != nil && info.License.Name == "" {
		errs = append(errs, missingField("info.license.name"))
	}
	return errs
}

func checkServers(prefix string, servers []*Server) []error {
	var errs []error
	for i, s := range servers {
		if s == nil || s.URL == "" {
			errs = append(errs, missingField(fmt.Sprintf("%s[%d].url", prefix, i)))
		}
	}
	return errs
}

func checkPaths(paths Paths) []error {
	var errs []error
	for _, pattern := range slices.Sorted(maps.Keys(paths)) {
		item := paths[pattern]
		if item == nil {
			continue
		}
		prefix := "paths." + pattern
		errs = append(errs, checkServers(prefix+".servers", item.Servers)...)
		errs = append(errs, checkParameters(prefix+".parameters", item.Parameters)...)
		for _, mo := range item.Operations() {
			errs = append(errs, checkOperation(prefix+"."+mo.Method, mo.Operation)...)
		}
	}
	return errs
}

func checkOperation(opPath string, op *Operation) []error {
	var errs []error
	if op.Responses == nil {
		errs = append(errs, missingField(opPath+".responses"))
	} else {
		for _, code := range slices.Sorted(maps.Keys(op.Responses)) {
			if !httputil.IsResponseKey(code) {
				errs = append(errs, fmt.Errorf("invalid status code '%s' in '%s.responses'", code, opPath))
			}
		}
	}
	errs = append(errs, checkParameters(opPath+".parameters", op.Parameters)...)
	errs = append(errs, checkServers(opPath+".servers", op.Servers)...)
	return errs
}

func checkParameters(prefix string, params []*Parameter) []error {
	var errs []error
	for i, p := range params {
		if p == nil || p.Ref != "" {
			continue
		}
		if p.Name == "" {
			errs = append(errs, missingField(fmt.Sprintf("%s[%d].name", prefix, i)))
		}
		if p.In == "" {
			errs = append(errs, missingField(fmt.Sprintf("%s[%d].in", prefix, i)))
		}
	}
	return errs
}
