package parser_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigou0206/stepflow-test/internal/testutil"
	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
)

const (
	minimalJSON = `{"openapi":"3.0.0","info":{"title":"t","version":"1"},"paths":{}}`
	minimalYAML = "openapi: \"3.0.0\"\ninfo:\n  title: t\n  version: \"1\"\npaths: {}"
	// a YAML flow mapping: starts like JSON but unquoted keys make it invalid JSON
	flowYAML = `{openapi: 3.0.0, info: {title: t, version: "1"}, paths: {}}`
)

// eventRecorder collects decode events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []parser.Event
}

func (r *eventRecorder) Observe(e parser.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []parser.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]parser.EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newDecoder(t *testing.T, opts ...parser.Option) *parser.Decoder {
	t.Helper()
	d, err := parser.New(opts...)
	require.NoError(t, err)
	return d
}

func requireAggregate(t *testing.T, err error) *oaserrors.AggregateDecodeError {
	t.Helper()
	require.Error(t, err)
	var agg *oaserrors.AggregateDecodeError
	require.True(t, errors.As(err, &agg), "expected *oaserrors.AggregateDecodeError, got %T", err)
	return agg
}

func TestDecodeJSONFirstAttemptSucceeds(t *testing.T) {
	rec := &eventRecorder{}
	d := newDecoder(t, parser.WithObserver(rec))

	res, err := d.DecodeResult([]byte(minimalJSON))
	require.NoError(t, err)

	assert.Equal(t, parser.SourceFormatJSON, res.Guess)
	assert.Equal(t, parser.SourceFormatJSON, res.Format)
	assert.Empty(t, res.Attempts)
	assert.False(t, res.FellBack())
	assert.Equal(t, "3.0.0", res.Document.OpenAPI)
	assert.Equal(t, int64(len(minimalJSON)), res.SourceSize)

	// the YAML codec never runs
	assert.Equal(t, []parser.EventKind{parser.EventGuess, parser.EventAttemptSucceeded}, rec.kinds())
}

func TestDecodeYAMLFirstAttemptSucceeds(t *testing.T) {
	rec := &eventRecorder{}
	d := newDecoder(t, parser.WithObserver(rec))

	res, err := d.DecodeResult([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, parser.SourceFormatYAML, res.Guess)
	assert.Equal(t, parser.SourceFormatYAML, res.Format)
	assert.Empty(t, res.Attempts)
	assert.Equal(t, "3.0.0", res.Document.OpenAPI)
	assert.Equal(t, "t", res.Document.Info.Title)
	assert.Equal(t, []parser.EventKind{parser.EventGuess, parser.EventAttemptSucceeded}, rec.kinds())
}

func TestDecodeNotASpec(t *testing.T) {
	rec := &eventRecorder{}
	d := newDecoder(t, parser.WithObserver(rec))

	doc, err := d.DecodeString("not a spec at all")
	assert.Nil(t, doc)
	agg := requireAggregate(t, err)

	assert.Equal(t, "yaml", agg.First())
	assert.Equal(t, []string{"yaml", "json"}, agg.Order())
	require.Len(t, agg.Attempts, 2)

	yamlErr := agg.Attempt(oaserrors.FormatYAML)
	jsonErr := agg.Attempt(oaserrors.FormatJSON)
	require.NotNil(t, yamlErr)
	require.NotNil(t, jsonErr)
	assert.NotEmpty(t, yamlErr.Detail())
	assert.NotEmpty(t, jsonErr.Detail())
	assert.NotEqual(t, yamlErr.Detail(), jsonErr.Detail())

	assert.ErrorIs(t, err, oaserrors.ErrDecode)
	assert.ErrorIs(t, err, oaserrors.ErrYAMLDecode)
	assert.ErrorIs(t, err, oaserrors.ErrJSONDecode)

	assert.Equal(t, []parser.EventKind{
		parser.EventGuess,
		parser.EventAttemptFailed,
		parser.EventAttemptFailed,
		parser.EventDecodeFailed,
	}, rec.kinds())
}

func TestDecodeYAMLFallbackWhenGuessIsJSON(t *testing.T) {
	require.Equal(t, parser.SourceFormatJSON, parser.GuessFormatString(flowYAML))

	res, err := newDecoder(t).DecodeResult([]byte(flowYAML))
	require.NoError(t, err)

	assert.Equal(t, parser.SourceFormatJSON, res.Guess)
	assert.Equal(t, parser.SourceFormatYAML, res.Format)
	assert.True(t, res.FellBack())
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, oaserrors.FormatJSON, res.Attempts[0].Format)
	assert.Equal(t, "t", res.Document.Info.Title)
}

func TestDecodeJSONRegardlessOfGuess(t *testing.T) {
	for _, hint := range []parser.SourceFormat{parser.SourceFormatJSON, parser.SourceFormatYAML} {
		t.Run(hint.String(), func(t *testing.T) {
			d := newDecoder(t, parser.WithFormatHint(hint))
			res, err := d.DecodeResult([]byte(minimalJSON))
			require.NoError(t, err)
			assert.Equal(t, hint, res.Guess)
			assert.Equal(t, "3.0.0", res.Document.OpenAPI)
		})
	}
}

func TestDecodeEmptyInputTriesBothCodecs(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		t.Run("", func(t *testing.T) {
			rec := &eventRecorder{}
			d := newDecoder(t, parser.WithObserver(rec))

			doc, err := d.DecodeString(input)
			assert.Nil(t, doc)
			agg := requireAggregate(t, err)
			assert.Equal(t, []string{"yaml", "json"}, agg.Order())
			assert.Equal(t, 2, countKind(rec.kinds(), parser.EventAttemptFailed))
		})
	}
}

func countKind(kinds []parser.EventKind, k parser.EventKind) int {
	n := 0
	for _, got := range kinds {
		if got == k {
			n++
		}
	}
	return n
}

func TestDecodeExactlyOneOutcome(t *testing.T) {
	inputs := []string{
		minimalJSON,
		minimalYAML,
		flowYAML,
		"not a spec at all",
		"",
		"[]",
		"{",
		"- a\n- b",
		"openapi: 2.0\ninfo: {title: t, version: v}\npaths: {}",
		testutil.PetstoreJSON,
		testutil.PetstoreYAML,
	}
	for _, input := range inputs {
		doc, err := parser.DecodeString(input)
		assert.True(t, (doc == nil) != (err == nil), "input %q: doc=%v err=%v", input, doc, err)
	}
}

func TestDecodeSameDocumentFromBothFormats(t *testing.T) {
	want := testutil.NewPetstoreDocument()
	opts := cmpopts.EquateEmpty()

	fromJSON, err := parser.DecodeString(testutil.PetstoreJSON)
	require.NoError(t, err)
	fromYAML, err := parser.DecodeString(testutil.PetstoreYAML)
	require.NoError(t, err)

	if diff := cmp.Diff(want, fromJSON, opts); diff != "" {
		t.Errorf("JSON document mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, fromYAML, opts); diff != "" {
		t.Errorf("YAML document mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"missing openapi", "info: {title: t, version: v}\npaths: {}", "'openapi'"},
		{"missing info", "openapi: 3.0.0\npaths: {}", "'info'"},
		{"missing title", "openapi: 3.0.0\ninfo: {version: v}\npaths: {}", "info.title"},
		{"missing version", "openapi: 3.0.0\ninfo: {title: t}\npaths: {}", "info.version"},
		{"missing paths", "openapi: 3.0.0\ninfo: {title: t, version: v}", "'paths'"},
		{"swagger 2", "openapi: 2.0.0\ninfo: {title: t, version: v}\npaths: {}", "major version must be 3"},
		{"bad version", "openapi: three\ninfo: {title: t, version: v}\npaths: {}", "invalid 'openapi' value"},
		{"missing responses", "openapi: 3.0.0\ninfo: {title: t, version: v}\npaths:\n  /a:\n    get: {}", "paths./a.get.responses"},
		{"bad status code", "openapi: 3.0.0\ninfo: {title: t, version: v}\npaths:\n  /a:\n    get:\n      responses:\n        \"999\": {description: x}", "invalid status code '999'"},
		{"parameter without in", "openapi: 3.0.0\ninfo: {title: t, version: v}\npaths:\n  /a:\n    get:\n      parameters:\n        - name: q\n      responses: {}", "paths./a.get.parameters[0].in"},
		{"server without url", "openapi: 3.0.0\ninfo: {title: t, version: v}\nservers:\n  - description: x\npaths: {}", "servers[0].url"},
		{"tag without name", "openapi: 3.0.0\ninfo: {title: t, version: v}\ntags:\n  - description: x\npaths: {}", "tags[0].name"},
		{"license without name", "openapi: 3.0.0\ninfo: {title: t, version: v, license: {url: u}}\npaths: {}", "info.license.name"},
		{"wrong type", "openapi: 3.0.0\ninfo: [1, 2]\npaths: {}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.DecodeString(tt.content)
			agg := requireAggregate(t, err)
			yamlErr := agg.Attempt(oaserrors.FormatYAML)
			require.NotNil(t, yamlErr)
			if tt.field != "" {
				assert.Contains(t, yamlErr.Error(), tt.field)
			}
		})
	}
}

func TestDecodeWithoutStructureCheck(t *testing.T) {
	d := newDecoder(t, parser.WithValidateStructure(false))

	doc, err := d.DecodeString("openapi: 3.0.0")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", doc.OpenAPI)
	assert.Nil(t, doc.Info)
}

func TestDecodeErrorPositions(t *testing.T) {
	t.Run("json syntax error", func(t *testing.T) {
		content := "{\n  \"openapi\": \"3.0.0\",\n  oops\n}"
		_, err := parser.DecodeString(content)
		agg := requireAggregate(t, err)
		assert.Equal(t, "json", agg.First())

		jsonErr := agg.Attempt(oaserrors.FormatJSON)
		require.NotNil(t, jsonErr)
		assert.Equal(t, 3, jsonErr.Line)
		assert.Equal(t, 3, jsonErr.Column)
	})

	t.Run("yaml type error", func(t *testing.T) {
		_, err := parser.DecodeString("openapi: 3.0.0\ninfo: [1, 2]\npaths: {}")
		agg := requireAggregate(t, err)

		yamlErr := agg.Attempt(oaserrors.FormatYAML)
		require.NotNil(t, yamlErr)
		assert.Equal(t, 2, yamlErr.Line)
	})

	t.Run("yaml syntax error", func(t *testing.T) {
		_, err := parser.DecodeString("openapi: 3.0.0\n\tinfo: x\n")
		agg := requireAggregate(t, err)

		yamlErr := agg.Attempt(oaserrors.FormatYAML)
		require.NotNil(t, yamlErr)
		assert.Positive(t, yamlErr.Line)
	})
}

func TestDecodeMaxInputSize(t *testing.T) {
	d := newDecoder(t, parser.WithMaxInputSize(10))

	_, err := d.DecodeString(minimalJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	var rle *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, int64(10), rle.Limit)
	assert.Equal(t, int64(len(minimalJSON)), rle.Actual)
}

func TestDecodeLogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	d := newDecoder(t, parser.WithLogger(logger))

	_, err := d.DecodeString("not a spec at all")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "format guessed")
	assert.Contains(t, out, "decode attempt failed")
	assert.Contains(t, out, "all decode attempts failed")
}

func TestDecodeWithoutObserverIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := parser.DecodeString("not a spec at all")
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestDecoderConcurrentUse(t *testing.T) {
	d := newDecoder(t)
	inputs := []string{testutil.PetstoreJSON, testutil.PetstoreYAML, "not a spec at all"}

	var wg sync.WaitGroup
	for i := range 30 {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			doc, err := d.DecodeString(input)
			if input == "not a spec at all" {
				assert.Nil(t, doc)
				assert.Error(t, err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, "Petstore", doc.Info.Title)
			}
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}

func TestDecodeResultStats(t *testing.T) {
	res, err := newDecoder(t).DecodeResult([]byte(testutil.PetstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, parser.DocumentStats{
		PathCount:           2,
		OperationCount:      3,
		SchemaCount:         1,
		SecuritySchemeCount: 1,
	}, res.Stats)
}

func TestNewInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  parser.Option
	}{
		{"unknown format hint", parser.WithFormatHint("xml")},
		{"nil logger", parser.WithLogger(nil)},
		{"nil observer", parser.WithObserver(nil)},
		{"negative max input size", parser.WithMaxInputSize(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parser.New(tt.opt)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestNewAcceptsUnknownHint(t *testing.T) {
	d := newDecoder(t, parser.WithFormatHint(parser.FormatFromPath("spec.txt")))

	res, err := d.DecodeResult([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, res.Guess)
}
