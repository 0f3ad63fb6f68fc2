package commands

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigou0206/stepflow-test/internal/testutil"
	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
)

// captureOutput runs fn while capturing *target (os.Stdout or os.Stderr).
func captureOutput(t *testing.T, target **os.File, fn func()) string {
	t.Helper()
	old := *target
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*target = w
	defer func() { *target = old }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	return <-done
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureOutput(t, &os.Stdout, fn)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureOutput(t, &os.Stderr, fn)
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseHint(t *testing.T) {
	f, err := ParseHint("")
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatUnknown, f)

	f, err = ParseHint("YML")
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, f)

	f, err = ParseHint("json")
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatJSON, f)

	_, err = ParseHint("toml")
	assert.ErrorContains(t, err, "invalid hint 'toml'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]string{"key": "value"}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.JSONEq(t, `{"key": "value"}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Equal(t, "key: value\n\n", buf.String())

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestReadInput(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "api.yaml", testutil.MinimalYAML)
		data, err := ReadInput(path, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, testutil.MinimalYAML, string(data))
	})

	t.Run("stdin", func(t *testing.T) {
		data, err := ReadInput(StdinFilePath, strings.NewReader(testutil.MinimalJSON), DefaultMaxInputSize)
		require.NoError(t, err)
		assert.Equal(t, testutil.MinimalJSON, string(data))
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		data, err := ReadInput(StdinFilePath, strings.NewReader("abcd"), 4)
		require.NoError(t, err)
		assert.Equal(t, "abcd", string(data))
	})

	t.Run("over the limit", func(t *testing.T) {
		_, err := ReadInput(StdinFilePath, strings.NewReader("abcde"), 4)
		require.ErrorIs(t, err, oaserrors.ErrResourceLimit)
		var limitErr *oaserrors.ResourceLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, int64(4), limitErr.Limit)
		assert.Contains(t, err.Error(), "<stdin> is too large")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadInput("does-not-exist.yaml", nil, 0)
		assert.Error(t, err)
	})
}

func TestOutputAttempts(t *testing.T) {
	var buf bytes.Buffer
	OutputAttempts(&buf, []*oaserrors.DecodeError{
		{Format: "yaml", Line: 2, Column: 5, Cause: errors.New("mapping values are not allowed")},
		{Format: "json", Message: "not an OpenAPI 3.0 document", Cause: errors.New("missing required field 'paths'")},
	})
	assert.Equal(t,
		"  1. yaml (line 2, column 5): mapping values are not allowed\n"+
			"  2. json: not an OpenAPI 3.0 document: missing required field 'paths'\n",
		buf.String())
}
