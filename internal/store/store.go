// Package store defines the record store contract and its in-process
// implementation.
package store

import (
	"calltracker/internal/models"
	"context"
)

// RecordStore is the single source of truth for voters, identities and
// call/export events. Implementations must be safe for concurrent use.
type RecordStore interface {
	// FetchVoters returns every voter matching criteria in store order.
	// Blank criteria return an empty result. No row cap is applied.
	FetchVoters(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error)
	FetchAllVoters(ctx context.Context) ([]models.VoterRecord, error)
	FetchVotersByIDs(ctx context.Context, ids []string) ([]models.VoterRecord, error)
	LookupVoters(ctx context.Context, q models.LookupQuery) ([]models.VoterRecord, error)
	CountVoters(ctx context.Context) (int, error)
	UpsertVoters(ctx context.Context, voters []models.VoterRecord) (int, error)

	// FetchCallEvents returns the events of one identity, or of everyone
	// when identityID is empty, oldest first.
	FetchCallEvents(ctx context.Context, identityID string) ([]models.CallEvent, error)
	// InsertCallEvent is a no-op when the pair already exists.
	InsertCallEvent(ctx context.Context, ev models.CallEvent) error
	// DeleteCallEvent is a no-op when the pair does not exist.
	DeleteCallEvent(ctx context.Context, identityID, voterID string) error

	FetchIdentities(ctx context.Context) ([]models.Identity, error)
	FetchIdentity(ctx context.Context, id string) (*models.Identity, error)
	// UpsertIdentity creates the identity unless one with the same id exists.
	UpsertIdentity(ctx context.Context, identity models.Identity) error

	InsertExportEvent(ctx context.Context, ev models.ExportEvent) error
	CountExportEvents(ctx context.Context, identityID string) (int, error)

	Close()
}
