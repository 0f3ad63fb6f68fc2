package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigou0206/stepflow-test/internal/testutil"
	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
)

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFile(t, "petstore.json", testutil.PetstoreJSON)

	result, err := specInput{File: path}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatJSON, result.Guess)
	assert.Equal(t, parser.SourceFormatJSON, result.Format)
	assert.Equal(t, "Petstore", result.Document.Info.Title)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()

	result, err := specInput{Content: testutil.MinimalYAML}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, result.Format)
	assert.Empty(t, result.Attempts)
}

func TestSpecInput_FileExtensionIsOnlyAHint(t *testing.T) {
	specCache.reset()
	// YAML content behind a .json name: JSON is tried first and YAML rescues it.
	path := testutil.WriteTempFile(t, "mislabelled.json", testutil.MinimalYAML)

	result, err := specInput{File: path}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatJSON, result.Guess)
	assert.Equal(t, parser.SourceFormatYAML, result.Format)
	require.Len(t, result.Attempts, 1)
	assert.Equal(t, oaserrors.FormatJSON, result.Attempts[0].Format)
}

func TestSpecInput_ExplicitHint(t *testing.T) {
	specCache.reset()

	result, err := specInput{Content: testutil.MinimalJSON, Hint: "yaml"}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatYAML, result.Guess)
}

func TestSpecInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
		want  string
	}{
		{"none provided", specInput{}, "exactly one of file, url, or content must be provided (got 0)"},
		{"multiple provided", specInput{File: "foo.yaml", Content: "bar"}, "exactly one of file, url, or content must be provided (got 2)"},
		{"bad hint", specInput{Content: "x", Hint: "xml"}, "must be json or yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve(context.Background())
	assert.Error(t, err)
}

func TestSpecInput_ResolveUndecodable(t *testing.T) {
	specCache.reset()

	_, err := specInput{Content: "not a spec at all"}.resolve(context.Background())
	require.Error(t, err)
	var agg *oaserrors.AggregateDecodeError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []string{"yaml", "json"}, agg.Order())
	assert.Zero(t, specCache.size(), "failures are not cached")
}

func TestReadFileLimited(t *testing.T) {
	path := testutil.WriteTempFile(t, "big.yaml", testutil.PetstoreYAML)

	_, err := readFileLimited(path, 10)
	var limitErr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(10), limitErr.Limit)
	assert.Equal(t, int64(len(testutil.PetstoreYAML)), limitErr.Actual)

	data, err := readFileLimited(path, 0)
	require.NoError(t, err)
	assert.Equal(t, testutil.PetstoreYAML, string(data))

	_, err = readFileLimited(filepath.Dir(path), 0)
	assert.ErrorContains(t, err, "is a directory")
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/openapi":
			if !strings.HasPrefix(r.Header.Get("User-Agent"), "stepflow/") {
				http.Error(w, "missing user agent", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/vnd.oai.openapi+json")
			_, _ = w.Write([]byte(testutil.MinimalJSON))
		case "/yaml":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(testutil.MinimalYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	t.Run("content type becomes the declared format", func(t *testing.T) {
		data, declared, err := fetchURL(ctx, srv.Client(), srv.URL+"/openapi", 0)
		require.NoError(t, err)
		assert.Equal(t, testutil.MinimalJSON, string(data))
		assert.Equal(t, parser.SourceFormatJSON, declared)
	})

	t.Run("unrecognized content type declares nothing", func(t *testing.T) {
		_, declared, err := fetchURL(ctx, srv.Client(), srv.URL+"/yaml", 0)
		require.NoError(t, err)
		assert.Equal(t, parser.SourceFormatUnknown, declared)
	})

	t.Run("non-200 status", func(t *testing.T) {
		_, _, err := fetchURL(ctx, srv.Client(), srv.URL+"/missing", 0)
		assert.ErrorContains(t, err, "unexpected status 404")
	})

	t.Run("size limit", func(t *testing.T) {
		_, _, err := fetchURL(ctx, srv.Client(), srv.URL+"/openapi", 8)
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	})

	t.Run("scheme must be http", func(t *testing.T) {
		_, _, err := fetchURL(ctx, srv.Client(), "file:///etc/passwd", 0)
		assert.ErrorContains(t, err, "unsupported url scheme")
	})
}

func TestSpecInput_ResolveURLBlocksLoopback(t *testing.T) {
	specCache.reset()
	old := cfg.AllowPrivateIPs
	cfg.AllowPrivateIPs = false
	t.Cleanup(func() { cfg.AllowPrivateIPs = old })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testutil.MinimalYAML))
	}))
	t.Cleanup(srv.Close)

	_, err := specInput{URL: srv.URL}.resolve(context.Background())
	assert.ErrorContains(t, err, "blocked request")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)}

	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`openapi: "3.0.0"
info:
  title: Test V1
  version: "1.0"
paths: {}
`), 0o644))

	input := specInput{File: path}
	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test V1", result1.Document.Info.Title)

	require.NoError(t, os.WriteFile(path, []byte(`openapi: "3.0.0"
info:
  title: Test V2
  version: "2.0"
paths: {}
`), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "Test V2", result2.Document.Info.Title)
}

func TestSpecCache_ContentHash(t *testing.T) {
	specCache.reset()
	input := specInput{Content: testutil.MinimalJSON}

	result1, err := input.resolve(context.Background())
	require.NoError(t, err)
	result2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, result1, result2)

	hinted, err := specInput{Content: testutil.MinimalJSON, Hint: "yaml"}.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, result1, hinted, "hint is part of the cache key")
}

func TestSpecCache_Disabled(t *testing.T) {
	specCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	_, err := specInput{Content: testutil.MinimalYAML}.resolve(context.Background())
	require.NoError(t, err)
	assert.Zero(t, specCache.size())
}
