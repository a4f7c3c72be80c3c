package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected SlipMetadata
	}{
		{"empty", "", SlipMetadata{}},
		{"malformed", "{serial:", SlipMetadata{}},
		{"not an object", `["a"]`, SlipMetadata{}},
		{"string serial", `{"serial":"42","registration":"HP/07/D/1"}`, SlipMetadata{Serial: "42", Registration: "HP/07/D/1"}},
		{"numeric serial", `{"serial":17}`, SlipMetadata{Serial: "17"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMetadata(tt.raw))
		})
	}
}

func TestVoterRecord_Slip(t *testing.T) {
	v := VoterRecord{Metadata: `{"serial":"9"}`}
	assert.Equal(t, "9", v.Slip().Serial)
}
