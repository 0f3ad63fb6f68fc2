package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMethod(t *testing.T) {
	for _, m := range Methods {
		assert.True(t, IsMethod(m), m)
	}
	assert.True(t, IsMethod("GET"))
	assert.True(t, IsMethod("Patch"))
	assert.False(t, IsMethod("connect"))
	assert.False(t, IsMethod("parameters"))
	assert.False(t, IsMethod(""))
}

func TestMethodsOrder(t *testing.T) {
	assert.Equal(t, []string{"get", "post", "put", "delete", "patch", "head", "options", "trace"}, Methods)
}

func TestIsResponseKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"default", true},
		{"200", true},
		{"100", true},
		{"599", true},
		{"2XX", true},
		{"5XX", true},
		{"x-rate-limit", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"0XX", false},
		{"2xx", false},
		{"20", false},
		{"2000", false},
		{"+20", false},
		{"-20", false},
		{"ok", false},
		{"", false},
		{"Default", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResponseKey(tt.key))
		})
	}
}
