package models

import (
	"regexp"
	"strings"
)

type LookupField string

const (
	LookupContact  LookupField = "contact"
	LookupMetadata LookupField = "metadata"
	LookupFullName LookupField = "full_name"
)

const (
	SlipLookupLimit    = 20
	MinLookupQueryChar = 2
)

// LookupQuery is a single-field substring lookup with a row limit. It backs
// the voter slip search only; roster search is never capped.
type LookupQuery struct {
	Field   LookupField
	Pattern string
	Limit   int
}

var (
	phoneNoise   = regexp.MustCompile(`[\s\-+]`)
	countryCode  = regexp.MustCompile(`^91`)
	phonePattern = regexp.MustCompile(`^\d{7,10}$`)
)

// ClassifyLookup decides which column a free-text slip query targets:
// phone-like input searches contact, a registration code (contains "D/")
// searches metadata, anything else searches the full name. ok is false for
// queries shorter than MinLookupQueryChar.
func ClassifyLookup(raw string) (LookupQuery, bool) {
	q := strings.TrimSpace(raw)
	if len([]rune(q)) < MinLookupQueryChar {
		return LookupQuery{}, false
	}

	phone := countryCode.ReplaceAllString(phoneNoise.ReplaceAllString(q, ""), "")
	switch {
	case phonePattern.MatchString(phone):
		return LookupQuery{Field: LookupContact, Pattern: phone, Limit: SlipLookupLimit}, true
	case strings.Contains(strings.ToUpper(q), "D/"):
		return LookupQuery{Field: LookupMetadata, Pattern: q, Limit: SlipLookupLimit}, true
	default:
		return LookupQuery{Field: LookupFullName, Pattern: q, Limit: SlipLookupLimit}, true
	}
}

// Matches applies q to a record in process.
func (q LookupQuery) Matches(v *VoterRecord) bool {
	switch q.Field {
	case LookupContact:
		return ContainsFold(v.Contact, q.Pattern)
	case LookupMetadata:
		return ContainsFold(v.Metadata, q.Pattern)
	default:
		return ContainsFold(v.FullName, q.Pattern)
	}
}
