package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"COACH25", true},
		{"ABCD", true},
		{"A1B2C3D4E5F6G7H8", true},
		{"ABC", false},
		{"A1B2C3D4E5F6G7H8X", false},
		{"coach25", false},
		{"COACH 25", false},
		{"COACH-25", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWellFormed(tt.code), "code %q", tt.code)
	}
}
