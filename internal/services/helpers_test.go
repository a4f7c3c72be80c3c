package services

import (
	"calltracker/internal/models"
	"calltracker/internal/structures"
	"calltracker/internal/testutil"
	"time"
)

func testConfig(strategy string) *structures.Config {
	return &structures.Config{
		Search: structures.SearchConfig{
			Strategy: strategy,
			PageSize: models.DefaultPageSize,
			Debounce: 10 * time.Millisecond,
		},
		Session: structures.SessionConfig{TTL: time.Hour, GuestStore: "cache"},
		Slip: structures.SlipConfig{
			Candidate:    "DEV RAJ SHARMA",
			Designation:  "Advocate",
			BallotNumber: "63",
			Election:     "BCD Election 2026",
			ShareURL:     "https://slip.example.org",
		},
	}
}

func scenarioVoters() []models.VoterRecord {
	return []models.VoterRecord{
		{ID: "1", FullName: "RAJESH KUMAR", Pincode: "110019", Contact: "9816000001", Address: "Dwarka"},
		{ID: "2", FullName: "SUNIL SHARMA", Pincode: "110020", Metadata: `{"serial":12,"registration":"D/46/1958"}`},
	}
}

func newRoster(strategy string, ms *testutil.MockStore) (*RosterService, *testutil.MockMetrics) {
	metrics := &testutil.MockMetrics{}
	return NewRosterService(testConfig(strategy), ms, metrics, &testutil.MockLogger{}), metrics
}
