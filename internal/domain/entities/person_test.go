package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "valid list", raw: `["Boss Tweed", "William M. Tweed"]`, want: []string{"Boss Tweed", "William M. Tweed"}},
		{name: "empty string", raw: "", want: []string{}},
		{name: "empty list", raw: `[]`, want: []string{}},
		{name: "null", raw: `null`, want: []string{}},
		{name: "invalid json", raw: `{not json`, want: []string{}},
		{name: "non-list json", raw: `{"a": 1}`, want: []string{}},
		{name: "list of numbers", raw: `[1, 2]`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAliases(tt.raw))
		})
	}
}

func TestEncodeAliases(t *testing.T) {
	assert.Equal(t, `[]`, EncodeAliases(nil))
	assert.Equal(t, `[]`, EncodeAliases([]string{}))
	assert.Equal(t, `["Met","The Met"]`, EncodeAliases([]string{"Met", "The Met"}))
}

func TestAliasRoundTrip(t *testing.T) {
	aliases := []string{"Jacob A. Riis", "Riis"}
	assert.Equal(t, aliases, ParseAliases(EncodeAliases(aliases)))
}
