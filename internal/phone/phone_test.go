package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"valid safaricom prefix", "254712345678", true},
		{"valid airtel prefix", "254112345678", true},
		{"local format rejected", "0712345678", false},
		{"too short", "25471234567", false},
		{"too long", "2547123456789", false},
		{"wrong fourth digit", "254812345678", false},
		{"plus prefix rejected", "+25471234567", false},
		{"letters rejected", "25471234567a", false},
		{"empty string", "", false},
		{"wrong country code", "255712345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.candidate))
		})
	}
}
