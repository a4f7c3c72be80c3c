package models

// VoterRecord is a single roster row. Records are owned by the record store
// and are read-only to the search and tracking code.
type VoterRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName"`
	Contact   string `json:"contact,omitempty"`
	Address   string `json:"address,omitempty"`
	Pincode   string `json:"pincode,omitempty"`
	City      string `json:"city,omitempty"`
	Metadata  string `json:"metadata,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"`
}

// Slip returns the parsed metadata blob. Malformed metadata yields an empty
// SlipMetadata.
func (v *VoterRecord) Slip() SlipMetadata {
	return ParseMetadata(v.Metadata)
}
