package controllers

import (
	"calltracker/internal/guest"
	"calltracker/internal/models"
	"calltracker/internal/services"
	"calltracker/internal/session"
	"calltracker/internal/structures"
	"calltracker/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type stack struct {
	conf        *structures.Config
	store       *testutil.MockStore
	cache       *testutil.MockCache
	metrics     *testutil.MockMetrics
	logger      *testutil.MockLogger
	registry    *session.Registry
	roster      *services.RosterService
	auth        *AuthController
	voters      *VoterController
	leaderboard *LeaderboardController
	slips       *SlipController
	exports     *ExportController
	health      *HealthController
}

func newStack(t *testing.T) *stack {
	t.Helper()
	conf := &structures.Config{
		Search: structures.SearchConfig{Strategy: "remote", PageSize: 2, Debounce: 5 * time.Millisecond},
		Session: structures.SessionConfig{
			TTL:        time.Hour,
			GuestStore: "cache",
		},
		Slip: structures.SlipConfig{Candidate: "DEV RAJ SHARMA", BallotNumber: "63", Election: "BCD Election 2026"},
	}
	ms := testutil.NewMockStore(
		models.VoterRecord{ID: "1", FullName: "RAJESH KUMAR", Pincode: "110019", Contact: "9816000001"},
		models.VoterRecord{ID: "2", FullName: "SUNIL SHARMA", Pincode: "110020", Metadata: `{"registration":"D/46/1958"}`},
		models.VoterRecord{ID: "3", FullName: "ASHA SHARMA", Pincode: "110021"},
	)
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}
	cache := testutil.NewMockCache()

	roster := services.NewRosterService(conf, ms, metrics, logger)
	registry := session.NewRegistry(conf, ms, roster, metrics, logger)
	t.Cleanup(registry.CloseAll)
	guests := services.NewGuestService(ms, guest.NewCacheStore(1, time.Hour), registry, logger)

	base := NewApiController(logger, cache)
	return &stack{
		conf:        conf,
		store:       ms,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		registry:    registry,
		roster:      roster,
		auth:        NewAuthController(base, guests, conf),
		voters:      NewVoterController(base, roster, metrics, conf),
		leaderboard: NewLeaderboardController(base, services.NewLeaderboardService(ms)),
		slips:       NewSlipController(base, roster, services.NewSlipService(conf)),
		exports:     NewExportController(base, services.NewExportService(roster, ms, metrics, logger)),
		health:      NewHealthController(roster, registry),
	}
}

func (s *stack) protected(h http.HandlerFunc) http.Handler {
	return s.auth.RequireSession(h)
}

func (s *stack) login(t *testing.T, name string) string {
	t.Helper()
	rr := do(http.HandlerFunc(s.auth.Login), http.MethodPost, "/login", `{"displayName":"`+name+`"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func do(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
