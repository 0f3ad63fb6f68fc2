// Package parser decodes OpenAPI 3.0 documents whose serialization format is
// not known in advance.
//
// Content is sniffed to pick the codec to try first: text starting with '{'
// or '[' is tried as JSON, everything else as YAML. If that codec cannot
// produce a structurally complete document the other codec is tried. The
// first success wins; when both fail the caller gets one
// [oaserrors.AggregateDecodeError] carrying each codec's native diagnostic in
// the order the codecs ran.
//
// # Quick Start
//
//	doc, err := parser.DecodeString(content)
//	if err != nil {
//		var agg *oaserrors.AggregateDecodeError
//		if errors.As(err, &agg) {
//			for _, a := range agg.Attempts {
//				fmt.Printf("%s: %s\n", a.Format, a.Detail())
//			}
//		}
//		return err
//	}
//	fmt.Println(doc.Info.Title)
//
// A configured [Decoder] accepts a format hint, a logger and observers:
//
//	d, err := parser.New(
//		parser.WithFormatHint(parser.FormatFromPath(path)),
//		parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
//	res, err := d.DecodeResult(data)
//
// A hint only changes which codec runs first. The fallback always runs.
//
// # Structural Check
//
// A codec counts as successful only if the decoded value carries the fields
// OpenAPI 3.0 requires: an "openapi" version with major 3, info with title
// and version, and paths, plus required fields of nested objects such as
// operation responses and parameter name and location. Syntax errors, type
// mismatches and missing fields are all reported as that codec's failure.
// Disable the check with [WithValidateStructure].
//
// # Observability
//
// Nothing is logged by default. Decode steps are published as [Event] values
// to every [Observer] registered with [WithObserver]; [WithLogger] registers a
// [LogObserver] for the given [Logger].
//
// # Working With Documents
//
// [Endpoints] flattens a document into one entry per operation with
// path-level parameters merged in and local refs resolved. The Resolve
// methods on [Document] follow "#/components/..." references.
// [GetDocumentStats] counts paths, operations, schemas and security schemes.
//
// Specification extensions ("x-" fields) are kept in each object's Extra map
// for both formats.
package parser
