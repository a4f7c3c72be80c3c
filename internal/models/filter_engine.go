package models

import "strings"

// FilterEngine performs the in-process variant of roster search. Matching
// lowercases both sides rune by rune and tests for a substring, the way
// ILIKE does in the remote store, so "ß" never matches "ss". Result order
// follows the corpus.
type FilterEngine struct {
	// AddressMatchesMetadata lets the address constraint match either the
	// address column or the raw metadata blob.
	AddressMatchesMetadata bool
}

func NewFilterEngine(addressMatchesMetadata bool) *FilterEngine {
	return &FilterEngine{AddressMatchesMetadata: addressMatchesMetadata}
}

// Search returns the records matching every active constraint. Blank
// criteria return an empty, non-nil slice regardless of the corpus.
func (e *FilterEngine) Search(criteria FilterCriteria, corpus []VoterRecord) []VoterRecord {
	result := make([]VoterRecord, 0)
	c := criteria.Normalize()
	if c.IsEmpty() {
		return result
	}

	m := newMatcher(c, e.AddressMatchesMetadata)
	for i := range corpus {
		if m.match(&corpus[i]) {
			result = append(result, corpus[i])
		}
	}
	return result
}

// Matches reports whether a single record satisfies the criteria.
func (e *FilterEngine) Matches(criteria FilterCriteria, v *VoterRecord) bool {
	c := criteria.Normalize()
	if c.IsEmpty() || v == nil {
		return false
	}
	return newMatcher(c, e.AddressMatchesMetadata).match(v)
}

// ContainsFold reports whether pattern occurs in value ignoring case. A blank
// value never contains a non-blank pattern.
func ContainsFold(value, pattern string) bool {
	return containsLower(value, strings.ToLower(pattern))
}

type matcher struct {
	name        string
	firstName   string
	lastName    string
	pincode     string
	address     string
	addressMeta bool
}

func newMatcher(c FilterCriteria, addressMeta bool) *matcher {
	return &matcher{
		name:        strings.ToLower(c.Name),
		firstName:   strings.ToLower(c.FirstName),
		lastName:    strings.ToLower(c.LastName),
		pincode:     strings.ToLower(c.Pincode),
		address:     strings.ToLower(c.Address),
		addressMeta: addressMeta,
	}
}

func (m *matcher) match(v *VoterRecord) bool {
	if m.name != "" && !containsLower(v.FullName, m.name) {
		return false
	}
	if m.firstName != "" && !containsLower(v.FirstName, m.firstName) {
		return false
	}
	if m.lastName != "" && !containsLower(v.LastName, m.lastName) {
		return false
	}
	if m.pincode != "" && !containsLower(v.Pincode, m.pincode) {
		return false
	}
	if m.address != "" {
		ok := containsLower(v.Address, m.address)
		if !ok && m.addressMeta {
			ok = containsLower(v.Metadata, m.address)
		}
		if !ok {
			return false
		}
	}
	return true
}

func containsLower(value, lowered string) bool {
	if value == "" {
		return false
	}
	return strings.Contains(strings.ToLower(value), lowered)
}
