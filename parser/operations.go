package parser

import (
	"github.com/shigou0206/stepflow-test/internal/httputil"
)

// MethodOperation pairs an HTTP method with the operation defined for it.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operation returns the operation defined for method (lowercase), or nil.
func (p *PathItem) Operation(method string) *Operation {
	if p == nil {
		return nil
	}
	switch method {
	case httputil.MethodGet:
		return p.Get
	case httputil.MethodPut:
		return p.Put
	case httputil.MethodPost:
		return p.Post
	case httputil.MethodDelete:
		return p.Delete
	case httputil.MethodOptions:
		return p.Options
	case httputil.MethodHead:
		return p.Head
	case httputil.MethodPatch:
		return p.Patch
	case httputil.MethodTrace:
		return p.Trace
	default:
		return nil
	}
}

// Operations returns the operations defined on the path item, in the order
// get, post, put, delete, patch, head, options, trace. Undefined methods are
// skipped.
func (p *PathItem) Operations() []MethodOperation {
	if p == nil {
		return nil
	}
	var ops []MethodOperation
	for _, m := range httputil.Methods {
		if op := p.Operation(m); op != nil {
			ops = append(ops, MethodOperation{Method: m, Operation: op})
		}
	}
	return ops
}
