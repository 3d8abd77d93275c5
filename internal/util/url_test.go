package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRedirectSafe(t *testing.T) {
	const baseURL = "http://localhost:5000"

	tests := []struct {
		name     string
		redirect string
		want     bool
	}{
		{"empty", "", true},
		{"relative path", "/term/wmcs", true},
		{"root", "/", true},
		{"protocol relative", "//evil.example", false},
		{"backslash variant", "/\\evil.example", false},
		{"newline injection", "/term\r\nSet-Cookie: x", false},
		{"same host absolute", "http://localhost:5000/term/wmcs", true},
		{"foreign host", "http://evil.example/phish", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"data scheme", "data:text/html,hi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRedirectSafe(tt.redirect, baseURL))
		})
	}
}
