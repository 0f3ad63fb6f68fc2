package mcpserver

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shigou0206/stepflow-test/oaserrors"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{"default limit returns all when under 100", items, 0, 0, []int{0, 1, 2, 3, 4}},
		{"explicit limit", items, 0, 2, []int{0, 1}},
		{"offset only", items, 2, 0, []int{2, 3, 4}},
		{"offset and limit", items, 1, 2, []int{1, 2}},
		{"offset beyond end", items, 5, 2, nil},
		{"negative offset", items, -1, 2, nil},
		{"limit exceeds remaining", items, 3, 10, []int{3, 4}},
		{"empty slice", []int{}, 0, 2, nil},
		{"negative limit treated as default", items, 0, -1, []int{0, 1, 2, 3, 4}},
		{"overflowing limit", items, 1, math.MaxInt, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_Caps(t *testing.T) {
	items := make([]int, 1500)
	for i := range items {
		items[i] = i
	}
	assert.Len(t, paginate(items, 0, 0), cfg.EndpointLimit)
	assert.Len(t, paginate(items, 0, 1500), cfg.MaxLimit)
}

func TestDetailLimit(t *testing.T) {
	assert.Equal(t, cfg.EndpointDetailLimit, detailLimit(0))
	assert.Equal(t, cfg.EndpointDetailLimit, detailLimit(-1))
	assert.Equal(t, 50, detailLimit(50))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error returns empty string", nil, ""},
		{"strips absolute path", fmt.Errorf("failed to open /home/user/secret/api.yaml: no such file"), "failed to open <path>: no such file"},
		{"preserves non-path content", fmt.Errorf("invalid JSON at line 5"), "invalid JSON at line 5"},
		{"strips multiple paths", fmt.Errorf("read /tmp/a.yaml then /tmp/b.yaml"), "read <path> then <path>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		res := errResult(errors.New("boom"))
		require.True(t, res.IsError)
		require.Len(t, res.Content, 1)
		assert.Equal(t, "boom", res.Content[0].(*mcp.TextContent).Text)
	})

	t.Run("aggregate lists attempts in order", func(t *testing.T) {
		agg := &oaserrors.AggregateDecodeError{Attempts: []*oaserrors.DecodeError{
			{Format: "yaml", Line: 1, Cause: errors.New("cannot unmarshal")},
			{Format: "json", Line: 1, Column: 1, Cause: errors.New("invalid character 'n'")},
		}}
		res := errResult(fmt.Errorf("wrapped: %w", agg))
		require.True(t, res.IsError)
		text := res.Content[0].(*mcp.TextContent).Text
		assert.Equal(t, "could not decode document: tried yaml then json\n"+
			"1. yaml decode error at line 1: cannot unmarshal\n"+
			"2. json decode error at line 1, column 1: invalid character 'n'", text)
	})
}

func TestGroupAndSort(t *testing.T) {
	items := []string{"a,b", "b", "c,b", "c"}
	groups := groupAndSort(items, func(s string) []string {
		var keys []string
		for _, r := range s {
			if r != ',' {
				keys = append(keys, string(r))
			}
		}
		return keys
	})
	assert.Equal(t, []groupCount{{"b", 3}, {"c", 2}, {"a", 1}}, groups)
}

func TestValidateGroupBy(t *testing.T) {
	assert.NoError(t, validateGroupBy("", true, endpointGroupBy))
	assert.NoError(t, validateGroupBy("TAG", false, endpointGroupBy))
	assert.Error(t, validateGroupBy("tag", true, endpointGroupBy))
	assert.Error(t, validateGroupBy("path", false, endpointGroupBy))
}
