package models

import "strings"

// FilterCriteria maps roster fields to substring patterns. A blank field
// means no constraint on that field; active constraints are ANDed.
type FilterCriteria struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Pincode   string `json:"pincode,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Normalize trims surrounding whitespace so that a field holding only spaces
// counts as blank.
func (c FilterCriteria) Normalize() FilterCriteria {
	return FilterCriteria{
		Name:      strings.TrimSpace(c.Name),
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Pincode:   strings.TrimSpace(c.Pincode),
		Address:   strings.TrimSpace(c.Address),
	}
}

func (c FilterCriteria) IsEmpty() bool {
	n := c.Normalize()
	return n.Name == "" && n.FirstName == "" && n.LastName == "" && n.Pincode == "" && n.Address == ""
}

// NamePart is the name fragment used in export file names.
func (c FilterCriteria) NamePart() string {
	n := c.Normalize()
	if n.Name != "" {
		return n.Name
	}
	parts := make([]string, 0, 2)
	if n.FirstName != "" {
		parts = append(parts, n.FirstName)
	}
	if n.LastName != "" {
		parts = append(parts, n.LastName)
	}
	return strings.Join(parts, "_")
}

// Describe renders the active constraints for document headers.
func (c FilterCriteria) Describe() string {
	n := c.Normalize()
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("Name", n.Name)
	add("First name", n.FirstName)
	add("Last name", n.LastName)
	add("Pincode", n.Pincode)
	add("Address", n.Address)
	if len(parts) == 0 {
		return "Filters: None"
	}
	return "Filters: " + strings.Join(parts, " | ")
}
