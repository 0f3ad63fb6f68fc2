package parser

import (
	"fmt"
	"strings"

	"github.com/shigou0206/stepflow-test/oaserrors"
)

// Reference types reported in oaserrors.ReferenceError.RefType
const (
	RefTypeLocal = "local"
	RefTypeFile  = "file"
	RefTypeHTTP  = "http"
)

const componentsRefPrefix = "#/components/"

// refType classifies ref as local, http, or file.
func refType(ref string) string {
	switch {
	case strings.HasPrefix(ref, "#"):
		return RefTypeLocal
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return RefTypeHTTP
	default:
		return RefTypeFile
	}
}

// unescapePointerToken undoes JSON pointer escaping (RFC 6901).
func unescapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// splitComponentRef returns the component name of a "#/components/<kind>/<name>" ref.
func splitComponentRef(ref, kind string) (string, error) {
	rt := refType(ref)
	if rt != RefTypeLocal {
		return "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: rt,
			Message: "only local references are supported",
		}
	}
	prefix := componentsRefPrefix + kind + "/"
	if !strings.HasPrefix(ref, prefix) || len(ref) == len(prefix) {
		return "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: rt,
			Message: fmt.Sprintf("expected a reference of the form %s<name>", prefix),
		}
	}
	name := ref[len(prefix):]
	if strings.Contains(name, "/") {
		return "", &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: rt,
			Message: "reference points inside a component",
		}
	}
	return unescapePointerToken(name), nil
}

// resolveComponent follows ref, and any chain of refs the target itself
// carries, through one components map.
func resolveComponent[T any](ref, kind string, components map[string]*T, refOf func(*T) string) (*T, error) {
	seen := make(map[string]bool)
	for {
		if seen[ref] {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				RefType:    RefTypeLocal,
				IsCircular: true,
			}
		}
		seen[ref] = true

		name, err := splitComponentRef(ref, kind)
		if err != nil {
			return nil, err
		}
		target, ok := components[name]
		if !ok || target == nil {
			return nil, &oaserrors.ReferenceError{
				Ref:     ref,
				RefType: RefTypeLocal,
				Message: fmt.Sprintf("no %s named %q", kind, name),
			}
		}
		next := refOf(target)
		if next == "" {
			return target, nil
		}
		ref = next
	}
}

func (d *Document) components() *Components {
	if d == nil || d.Components == nil {
		return &Components{}
	}
	return d.Components
}

// ResolveSchema returns the schema a "#/components/schemas/<name>" ref points
// to. References between components are followed until a concrete schema is
// reached.
func (d *Document) ResolveSchema(ref string) (*Schema, error) {
	return resolveComponent(ref, "schemas", d.components().Schemas,
		func(s *Schema) string { return s.Ref })
}

// ResolveParameter returns the parameter a "#/components/parameters/<name>" ref points to.
func (d *Document) ResolveParameter(ref string) (*Parameter, error) {
	return resolveComponent(ref, "parameters", d.components().Parameters,
		func(p *Parameter) string { return p.Ref })
}

// ResolveResponse returns the response a "#/components/responses/<name>" ref points to.
func (d *Document) ResolveResponse(ref string) (*Response, error) {
	return resolveComponent(ref, "responses", d.components().Responses,
		func(r *Response) string { return r.Ref })
}

// ResolveRequestBody returns the request body a "#/components/requestBodies/<name>" ref points to.
func (d *Document) ResolveRequestBody(ref string) (*RequestBody, error) {
	return resolveComponent(ref, "requestBodies", d.components().RequestBodies,
		func(rb *RequestBody) string { return rb.Ref })
}

// ResolveSecurityScheme returns the scheme a "#/components/securitySchemes/<name>" ref points to.
func (d *Document) ResolveSecurityScheme(ref string) (*SecurityScheme, error) {
	return resolveComponent(ref, "securitySchemes", d.components().SecuritySchemes,
		func(s *SecurityScheme) string { return s.Ref })
}
