package bdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		lang string
		want string
	}{
		{"CN", "en", "China"},
		{"us", "en", "United States"},
		{"DE", "de", "Deutschland"},
		{"DE", "not a language", "Germany"},
		{"", "en", ""},
		{"1", "en", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, CountryName(tt.code, tt.lang))
		})
	}
}
