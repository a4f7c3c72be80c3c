// Package roster cleans raw voter rolls and loads them into a record store.
package roster

import (
	"calltracker/internal/models"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

var (
	pincodePattern = regexp.MustCompile(`\b\d{6}\b`)
	nonDigit       = regexp.MustCompile(`\D`)
)

// knownAreas is matched in order, so longer names that contain a shorter
// one must come first.
var knownAreas = []string{
	"GREATER NOIDA", "DELHI", "NOIDA", "GURGAON", "GURUGRAM", "FARIDABAD",
	"GHAZIABAD", "KALKAJI", "SAKET", "LAJPAT NAGAR", "CHHALERA", "ROHINI",
	"DWARKA", "JANAKPURI", "PITAMPURA", "PUNJABI BAGH",
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Contact keeps only the digits and drops anything that is not a 10-digit
// number.
func Contact(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return ""
	}
	return digits
}

func Pincode(address string) string {
	return pincodePattern.FindString(address)
}

func City(address string) string {
	upper := strings.ToUpper(address)
	for _, area := range knownAreas {
		if strings.Contains(upper, area) {
			return titleCase(area)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// SplitName returns the first word and the remainder.
func SplitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// VoterID derives a stable id from the cleaned full name and contact, the
// same pair that identifies a duplicate row.
func VoterID(fullName, contact string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fullName+"\x00"+contact))
}

// Normalize cleans every record and drops nameless and duplicate rows
// (same full name and contact). A source id is kept; otherwise the id is
// derived with VoterID so it survives reordering of the source file.
// Derived fields are only filled when the source left them blank.
func Normalize(raw []models.VoterRecord) []models.VoterRecord {
	seen := make(map[string]struct{}, len(raw))
	used := make(map[string]struct{}, len(raw))
	out := make([]models.VoterRecord, 0, len(raw))
	for _, r := range raw {
		v := models.VoterRecord{
			ID:        strings.TrimSpace(r.ID),
			FullName:  collapse(r.FullName),
			FirstName: collapse(r.FirstName),
			LastName:  collapse(r.LastName),
			Contact:   Contact(r.Contact),
			Address:   collapse(r.Address),
			Pincode:   strings.TrimSpace(r.Pincode),
			City:      collapse(r.City),
			Metadata:  strings.TrimSpace(r.Metadata),
			PhotoURL:  strings.TrimSpace(r.PhotoURL),
			QRCodeURL: strings.TrimSpace(r.QRCodeURL),
		}
		if v.FullName == "" {
			v.FullName = collapse(v.FirstName + " " + v.LastName)
		}
		if v.FullName == "" {
			continue
		}

		key := v.FullName + "\x00" + v.Contact
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if v.FirstName == "" && v.LastName == "" {
			v.FirstName, v.LastName = SplitName(v.FullName)
		}
		if v.Pincode == "" {
			v.Pincode = Pincode(v.Address)
		}
		if v.City == "" {
			v.City = City(v.Address)
		}
		if v.ID == "" {
			v.ID = VoterID(v.FullName, v.Contact)
		}
		v.ID = uniqueID(v.ID, used)
		out = append(out, v)
	}
	return out
}

// uniqueID suffixes id when an earlier row in the batch already holds it.
func uniqueID(id string, used map[string]struct{}) string {
	candidate := id
	for n := 2; ; n++ {
		if _, ok := used[candidate]; !ok {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}
