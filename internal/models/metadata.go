package models

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// SlipMetadata is the nested record some roster sources encode in the
// metadata column.
type SlipMetadata struct {
	Serial       string `json:"serial,omitempty"`
	Registration string `json:"registration,omitempty"`
}

// ParseMetadata never fails: blank or malformed input gives an empty value.
// Serial numbers arrive as either strings or numbers depending on the source
// sheet, so fields are decoded loosely.
func ParseMetadata(raw string) SlipMetadata {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SlipMetadata{}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return SlipMetadata{}
	}

	return SlipMetadata{
		Serial:       cast.ToString(fields["serial"]),
		Registration: cast.ToString(fields["registration"]),
	}
}
