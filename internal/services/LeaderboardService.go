package services

import (
	"calltracker/internal/models"
	"calltracker/internal/store"
	"context"

	"golang.org/x/sync/errgroup"
)

type LeaderboardServiceInterface interface {
	Build(ctx context.Context) (*models.LeaderboardReport, error)
}

type LeaderboardService struct {
	store store.RecordStore
}

func NewLeaderboardService(store store.RecordStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// Build ranks every identity by call count and resolves the distinct called
// voters. Identities and events are loaded concurrently.
func (ls *LeaderboardService) Build(ctx context.Context) (*models.LeaderboardReport, error) {
	var (
		identities []models.Identity
		events     []models.CallEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identities, err = ls.store.FetchIdentities(gctx)
		return remote("fetch identities", err)
	})
	g.Go(func() error {
		var err error
		events, err = ls.store.FetchCallEvents(gctx, "")
		return remote("fetch call events", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.LeaderboardReport{
		Entries:      models.Rank(identities, events),
		Summary:      models.Summarize(events),
		CalledVoters: []models.CalledVoter{},
	}
	ids := models.CalledVoterIDs(events)
	if len(ids) == 0 {
		return report, nil
	}
	voters, err := ls.store.FetchVotersByIDs(ctx, ids)
	if err != nil {
		return nil, remote("fetch called voters", err)
	}
	report.CalledVoters = models.CalledVoters(ids, voters)
	return report, nil
}
