package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticVerifier(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		supplied string
		expected bool
	}{
		{"Matching secret", "admin-key-123", "admin-key-123", true},
		{"Wrong secret", "admin-key-123", "wrong", false},
		{"Empty supplied secret", "admin-key-123", "", false},
		{"Empty configured secret never matches", "", "", false},
		{"Case sensitive", "Admin-Key", "admin-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewStatic(tt.secret)
			assert.Equal(t, tt.expected, v.Verify(tt.supplied))
		})
	}
}
