package parser

import (
	"maps"
	"slices"
)

// Endpoint is one operation flattened with the context it inherits from its
// path item and the document.
type Endpoint struct {
	Path        string                `json:"path" yaml:"path"`
	Method      string                `json:"method" yaml:"method"`
	OperationID string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   Responses             `json:"responses,omitempty" yaml:"responses,omitempty"`
	Security    []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// Endpoints lists every operation in doc, paths in lexical order and methods
// in the order get, post, put, delete, patch, head, options, trace.
//
// Path-level parameters are merged into each operation's list; an operation
// parameter with the same name and location replaces the path-level one.
// Local parameter and request body refs are resolved; refs that cannot be
// resolved are kept as-is. Security is the operation's own requirement when
// it declares one (even an empty list), otherwise the document's.
func Endpoints(doc *Document) []Endpoint {
	if doc == nil {
		return nil
	}

	var endpoints []Endpoint
	for _, path := range slices.Sorted(maps.Keys(doc.Paths)) {
		item := doc.Paths[path]
		for _, mo := range item.Operations() {
			op := mo.Operation
			ep := Endpoint{
				Path:        path,
				Method:      mo.Method,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Deprecated:  op.Deprecated,
				Parameters:  mergeParameters(doc, item.Parameters, op.Parameters),
				RequestBody: resolveRequestBody(doc, op.RequestBody),
				Responses:   op.Responses,
				Security:    doc.Security,
			}
			if op.Security != nil {
				ep.Security = op.Security
			}
			if ep.Summary == "" {
				ep.Summary = item.Summary
			}
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints
}

type paramKey struct {
	name string
	in   string
}

// mergeParameters returns path-level parameters followed by operation
// parameters, where an operation parameter overrides a path-level one with
// the same (name, in).
func mergeParameters(doc *Document, pathParams, opParams []*Parameter) []*Parameter {
	if len(pathParams) == 0 && len(opParams) == 0 {
		return nil
	}

	merged := make([]*Parameter, 0, len(pathParams)+len(opParams))
	index := make(map[paramKey]int)
	add := func(p *Parameter, override bool) {
		if p == nil {
			return
		}
		p = resolveParameter(doc, p)
		if p.Ref != "" {
			merged = append(merged, p)
			return
		}
		key := paramKey{name: p.Name, in: p.In}
		if i, ok := index[key]; ok {
			if override {
				merged[i] = p
			}
			return
		}
		index[key] = len(merged)
		merged = append(merged, p)
	}

	for _, p := range pathParams {
		add(p, false)
	}
	for _, p := range opParams {
		add(p, true)
	}
	return merged
}

func resolveParameter(doc *Document, p *Parameter) *Parameter {
	if p.Ref == "" {
		return p
	}
	resolved, err := doc.ResolveParameter(p.Ref)
	if err != nil {
		return p
	}
	return resolved
}

func resolveRequestBody(doc *Document, rb *RequestBody) *RequestBody {
	if rb == nil || rb.Ref == "" {
		return rb
	}
	resolved, err := doc.ResolveRequestBody(rb.Ref)
	if err != nil {
		return rb
	}
	return resolved
}
