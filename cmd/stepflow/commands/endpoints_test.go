package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigou0206/stepflow-test/internal/testutil"
	"github.com/shigou0206/stepflow-test/parser"
)

func TestSetupEndpointsFlags(t *testing.T) {
	fs, flags := SetupEndpointsFlags()
	assert.Equal(t, FormatText, flags.Format)

	require.NoError(t, fs.Parse([]string{"--method", "get", "--path", "/pets/*", "--tag", "pets", "--deprecated", "--detail", "-q", "api.yaml"}))
	assert.Equal(t, "get", flags.Method)
	assert.Equal(t, "/pets/*", flags.Path)
	assert.Equal(t, "pets", flags.Tag)
	assert.True(t, flags.Deprecated)
	assert.True(t, flags.Detail)
	assert.True(t, flags.Quiet)
}

func TestHandleEndpoints_Table(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)

	var err error
	out := captureStdout(t, func() {
		err = HandleEndpoints([]string{path})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))
	assert.Contains(t, lines[1], "GET")
	assert.Contains(t, lines[1], "listPets")
	assert.Contains(t, lines[2], "POST")
	assert.Contains(t, lines[3], "/pets/{petId}")
}

func TestHandleEndpoints_QuietIsTabSeparated(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.json", testutil.PetstoreJSON)

	out := captureStdout(t, func() {
		require.NoError(t, HandleEndpoints([]string{"-q", "--method", "post", path}))
	})
	assert.Equal(t, "POST\t/pets\tcreatePet\tCreate a pet\tpets\n", out)
}

func TestHandleEndpoints_Structured(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)

	out := captureStdout(t, func() {
		require.NoError(t, HandleEndpoints([]string{"--format", "json", "--path", "/pets/*", path}))
	})
	assert.JSONEq(t, `[{"method": "GET", "path": "/pets/{petId}", "operation_id": "showPetById", "summary": "", "tags": ""}]`, out)
}

func TestHandleEndpoints_NoMatches(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)

	var out string
	diag := captureStderr(t, func() {
		out = captureStdout(t, func() {
			require.NoError(t, HandleEndpoints([]string{"--tag", "nope", path}))
		})
	})
	assert.Empty(t, out)
	assert.Contains(t, diag, "No endpoints matched")
}

func TestHandleEndpoints_InvalidMethod(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)
	err := HandleEndpoints([]string{"--method", "fetch", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid method 'fetch'")
}

func TestFilterEndpoints(t *testing.T) {
	eps := []parser.Endpoint{
		{Path: "/pets", Method: "get", Tags: []string{"pets"}},
		{Path: "/pets", Method: "post", Tags: []string{"pets", "admin"}, Deprecated: true},
		{Path: "/pets/{id}", Method: "get"},
	}

	assert.Len(t, filterEndpoints(eps, &EndpointsFlags{}), 3)
	assert.Len(t, filterEndpoints(eps, &EndpointsFlags{Method: "GET"}), 2)
	assert.Len(t, filterEndpoints(eps, &EndpointsFlags{Tag: "admin"}), 1)
	assert.Len(t, filterEndpoints(eps, &EndpointsFlags{Deprecated: true}), 1)
	assert.Len(t, filterEndpoints(eps, &EndpointsFlags{Path: "/pets/*"}), 1)
	assert.Empty(t, filterEndpoints(eps, &EndpointsFlags{Path: "/users"}))
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		path, pattern string
		want          bool
	}{
		{"/pets", "", true},
		{"/pets", "/pets", true},
		{"/pets/{id}", "/pets/*", true},
		{"/pets/{id}/photos", "/pets/*", false},
		{"/pets/{id}/photos", "/pets/*/photos", true},
		{"/users/{id}", "/pets/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPath(tt.path, tt.pattern))
		})
	}
}
