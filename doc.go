// Package stepflow ingests OpenAPI 3.0 documents for the stepflow gateway.
//
// Documents arrive as text whose format nobody declared: a file uploaded
// without an extension, a body posted without a Content-Type, a string pasted
// into a tool call. The [parser] package accepts JSON or YAML and returns a
// typed [parser.Document], or a single error that keeps what each codec
// reported.
//
// # Packages
//
//   - parser: format sniffing, dual-format decoding, the OpenAPI 3.0 object
//     model, endpoint extraction and local $ref resolution
//   - oaserrors: the error taxonomy shared by every package
//
// # Quick Start
//
//	import "github.com/shigou0206/stepflow-test/parser"
//
//	doc, err := parser.Decode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ep := range parser.Endpoints(doc) {
//		fmt.Println(ep.Method, ep.Path)
//	}
//
// # Command-Line Tool
//
// The stepflow command wraps the library:
//
//	stepflow decode openapi.yaml
//	stepflow decode --format json - < spec.txt
//	stepflow sniff spec.txt
//	stepflow endpoints openapi.json
//	stepflow mcp
//
// The mcp subcommand serves the decode, sniff and endpoints operations as
// Model Context Protocol tools over stdio.
//
// [parser]: https://pkg.go.dev/github.com/shigou0206/stepflow-test/parser
// [parser.Document]: https://pkg.go.dev/github.com/shigou0206/stepflow-test/parser#Document
package stepflow
