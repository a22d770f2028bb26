package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTable(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{"hash matches correct password", "Sup3r$ecret", hash, true},
		{"hash does not match incorrect password", "Sup3r$ecrex", hash, false},
		{"empty hash never matches", "Sup3r$ecret", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := VerifyPassword(tt.password, tt.hash)
			assert.Equal(t, tt.expected, match)
		})
	}
}
