package models

import "time"

const MinDisplayNameLength = 2

type Identity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
