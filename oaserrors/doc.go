// Package oaserrors provides structured error types for the stepflow OpenAPI decoder.
//
// Import path: github.com/shigou0206/stepflow-test/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell which codec failed and why without re-running a decode.
//
// # Error Types
//
//   - [DecodeError]: a single codec (JSON or YAML) failed to decode the document
//   - [AggregateDecodeError]: every codec failed; holds each [DecodeError] in attempt order
//   - [ReferenceError]: $ref resolution failures, circular references, non-local refs
//   - [ResourceLimitError]: input larger than a configured limit
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrDecode]: Matches any [AggregateDecodeError]
//   - [ErrJSONDecode]: Matches a [DecodeError] from the JSON codec
//   - [ErrYAMLDecode]: Matches a [DecodeError] from the YAML codec
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// A failed decode always returns an [AggregateDecodeError]:
//
//	doc, err := parser.DecodeString(content)
//	if errors.Is(err, oaserrors.ErrDecode) {
//	    var agg *oaserrors.AggregateDecodeError
//	    errors.As(err, &agg)
//	    fmt.Println("tried first:", agg.First())
//	    for _, attempt := range agg.Attempts {
//	        fmt.Printf("%s: %s\n", attempt.Format, attempt.Detail())
//	    }
//	}
//
// Because [AggregateDecodeError] unwraps to every attempt, the per-codec
// sentinels also match:
//
//	if errors.Is(err, oaserrors.ErrJSONDecode) {
//	    // the JSON codec was tried and failed
//	}
//
// Extract reference details with errors.As():
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	}
package oaserrors
