package models

import "time"

// CallEvent marks that an identity called a voter. There is at most one
// event per (IdentityID, VoterID) pair.
type CallEvent struct {
	IdentityID string    `json:"identityId"`
	VoterID    string    `json:"voterId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (c CallEvent) Key() string {
	return c.IdentityID + "\x00" + c.VoterID
}
