package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	stepflow "github.com/shigou0206/stepflow-test"
	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
)

// specInput represents the ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3.0 file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"http(s) URL to fetch an OpenAPI 3.0 document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content in JSON or YAML"`
	Hint    string `json:"hint,omitempty"    jsonschema:"Format to try first: json or yaml. Defaults to the file extension, the Content-Type, or sniffing the content"`
}

func (s specInput) validate() error {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return &oaserrors.ConfigError{
			Option:  "spec",
			Message: fmt.Sprintf("exactly one of file, url, or content must be provided (got %d)", count),
		}
	}
	if s.Hint != "" {
		if _, err := parser.ParseSourceFormat(s.Hint); err != nil {
			return &oaserrors.ConfigError{Option: "hint", Value: s.Hint, Message: "must be json or yaml", Cause: err}
		}
	}
	return nil
}

// cacheKey identifies the input for the spec cache. Files are keyed by
// absolute path and modification time so edits invalidate the entry; content
// is keyed by its SHA-256. An empty key means the input is not cacheable.
func (s specInput) cacheKey() string {
	var key string
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		key = fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.URL != "":
		key = "url:" + s.URL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		key = "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
	if s.Hint != "" {
		key += ":hint=" + s.Hint
	}
	return key
}

func (s specInput) cacheTTL() time.Duration {
	switch {
	case s.File != "":
		return cfg.CacheFileTTL
	case s.URL != "":
		return cfg.CacheURLTTL
	default:
		return cfg.CacheContentTTL
	}
}

// resolve decodes the document from whichever input was provided, using the
// spec cache when it is enabled.
func (s specInput) resolve(ctx context.Context) (*parser.Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var key string
	if cfg.CacheEnabled {
		key = s.cacheKey()
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	data, declared, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	hint := declared
	if s.Hint != "" {
		hint, _ = parser.ParseSourceFormat(s.Hint)
	}
	d, err := parser.New(
		parser.WithFormatHint(hint),
		parser.WithMaxInputSize(cfg.MaxContentSize),
		parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
	)
	if err != nil {
		return nil, err
	}
	result, err := d.DecodeResult(data)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.put(key, result, s.cacheTTL())
	}
	return result, nil
}

// load returns the raw document and the format its source declares, if any.
func (s specInput) load(ctx context.Context) ([]byte, parser.SourceFormat, error) {
	switch {
	case s.File != "":
		data, err := readFileLimited(s.File, cfg.MaxContentSize)
		return data, parser.FormatFromPath(s.File), err
	case s.URL != "":
		return fetchURL(ctx, newSafeHTTPClient(cfg.FetchTimeout, cfg.AllowPrivateIPs), s.URL, cfg.MaxContentSize)
	default:
		return []byte(s.Content), parser.SourceFormatUnknown, nil
	}
}

func readFileLimited(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading spec file: %s is a directory", filepath.Base(path))
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "content_size",
			Limit:        maxSize,
			Actual:       info.Size(),
			Message:      "set STEPFLOW_MAX_CONTENT_SIZE to increase",
		}
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304 - reading client-named specs is the tool's purpose
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return data, nil
}

// fetchURL downloads a document and reports the format named by its
// Content-Type header.
func fetchURL(ctx context.Context, client *http.Client, rawURL string, maxSize int64) ([]byte, parser.SourceFormat, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("unsupported url scheme %q: must be http or https", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", stepflow.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("fetching %s: %w", u.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("fetching %s: unexpected status %s", u.Redacted(), resp.Status)
	}

	var body io.Reader = resp.Body
	if maxSize > 0 {
		body = io.LimitReader(resp.Body, maxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, parser.SourceFormatUnknown, fmt.Errorf("reading response body: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, parser.SourceFormatUnknown, &oaserrors.ResourceLimitError{
			ResourceType: "content_size",
			Limit:        maxSize,
			Message:      "set STEPFLOW_MAX_CONTENT_SIZE to increase",
		}
	}
	return data, parser.FormatFromContentType(resp.Header.Get("Content-Type")), nil
}
