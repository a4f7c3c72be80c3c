package session

import (
	"calltracker/internal/models"
	"calltracker/internal/structures"
	"calltracker/internal/testutil"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	mu     sync.Mutex
	engine *models.FilterEngine
	corpus []models.VoterRecord
	err    error
	calls  int
}

func (s *stubSearcher) Search(_ context.Context, c models.FilterCriteria) ([]models.VoterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.engine.Search(c, s.corpus), nil
}

func (s *stubSearcher) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubSearcher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testConfig() *structures.Config {
	return &structures.Config{
		Search: structures.SearchConfig{
			PageSize: 2,
			Debounce: 20 * time.Millisecond,
		},
		Session: structures.SessionConfig{TTL: time.Hour},
	}
}

func testCorpus() []models.VoterRecord {
	return []models.VoterRecord{
		{ID: "1", FullName: "RAJESH KUMAR", Pincode: "110019"},
		{ID: "2", FullName: "SUNIL SHARMA", Pincode: "110020"},
		{ID: "3", FullName: "ASHA SHARMA", Pincode: "176001"},
		{ID: "4", FullName: "MEENA SHARMA", Pincode: "110021"},
		{ID: "5", FullName: "VIKRAM SHARMA", Pincode: "110022"},
	}
}

func newRegistry(t *testing.T) (*Registry, *testutil.MockStore, *stubSearcher) {
	t.Helper()
	corpus := testCorpus()
	ms := testutil.NewMockStore(corpus...)
	for _, id := range []models.Identity{guest, {ID: "guest_2", DisplayName: "Ravi"}} {
		require.NoError(t, ms.UpsertIdentity(context.Background(), id))
	}
	ss := &stubSearcher{engine: models.NewFilterEngine(false), corpus: corpus}
	r := NewRegistry(testConfig(), ms, ss, &testutil.MockMetrics{}, &testutil.MockLogger{})
	t.Cleanup(r.CloseAll)
	return r, ms, ss
}

var guest = models.Identity{ID: "guest_1", DisplayName: "Asha"}

func waitLoaded(t *testing.T, sess *Session) models.PageView {
	t.Helper()
	var view models.PageView
	require.Eventually(t, func() bool {
		view = sess.View()
		return !view.Loading
	}, time.Second, 5*time.Millisecond)
	return view
}

func TestRegistry_OpenHydratesTracker(t *testing.T) {
	r, ms, _ := newRegistry(t)
	ctx := context.Background()
	require.NoError(t, ms.InsertCallEvent(ctx, models.CallEvent{IdentityID: "guest_1", VoterID: "2"}))

	sess, err := r.Open(ctx, "tok", guest)
	require.NoError(t, err)
	assert.True(t, sess.Tracker().IsCalled("2"))
	assert.Equal(t, 1, r.Len())

	again, err := r.Open(ctx, "tok", guest)
	require.NoError(t, err)
	assert.Same(t, sess, again)

	got, ok := r.Get("tok")
	assert.True(t, ok)
	assert.Same(t, sess, got)
}

func TestRegistry_OpenReplacesOtherIdentity(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()
	first, err := r.Open(ctx, "tok", guest)
	require.NoError(t, err)

	second, err := r.Open(ctx, "tok", models.Identity{ID: "guest_2", DisplayName: "Ravi"})
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "guest_2", second.Identity.ID)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_OpenErrors(t *testing.T) {
	r, ms, _ := newRegistry(t)
	_, err := r.Open(context.Background(), "", guest)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	ms.FetchCallsErr = errors.New("down")
	_, err = r.Open(context.Background(), "tok", guest)
	assert.ErrorIs(t, err, models.ErrRemote)
	assert.Zero(t, r.Len())
}

func TestSession_SearchAndPaginate(t *testing.T) {
	r, _, _ := newRegistry(t)
	sess, err := r.Open(context.Background(), "tok", guest)
	require.NoError(t, err)

	sess.SetCriteria(models.FilterCriteria{Name: " sharma "})
	assert.True(t, sess.View().Loading)

	view := waitLoaded(t, sess)
	assert.Equal(t, "sharma", view.Criteria.Name)
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 1, view.Page)
	require.Len(t, view.Voters, 2)
	assert.Equal(t, "2", view.Voters[0].ID)

	view = sess.Navigate(NavNext, 0)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, 3, view.Start)
	assert.Equal(t, 4, view.End)

	view = sess.Navigate(NavNext, 0)
	assert.Equal(t, 2, view.Page, "next is a no-op on the last page")

	view = sess.Navigate(NavFirst, 0)
	assert.Equal(t, 1, view.Page)
	view = sess.Navigate("", 9)
	assert.Equal(t, 2, view.Page)
	view = sess.Navigate(NavPrev, 0)
	assert.Equal(t, 1, view.Page)
	view = sess.Navigate(NavLast, 0)
	assert.Equal(t, 2, view.Page)

	sess.SetCriteria(models.FilterCriteria{Pincode: "1100"})
	view = waitLoaded(t, sess)
	assert.Equal(t, 1, view.Page, "new results reset to page 1")
	assert.Equal(t, 4, view.Total)
}

func TestSession_EmptyCriteriaClearsWithoutSearching(t *testing.T) {
	r, _, ss := newRegistry(t)
	sess, err := r.Open(context.Background(), "tok", guest)
	require.NoError(t, err)

	sess.SetCriteria(models.FilterCriteria{Name: "sharma"})
	waitLoaded(t, sess)
	calls := ss.count()

	sess.SetCriteria(models.FilterCriteria{Name: "   "})
	view := sess.View()
	assert.False(t, view.Loading)
	assert.Zero(t, view.Total)
	assert.Equal(t, 1, view.TotalPages)
	assert.Empty(t, view.Voters)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, calls, ss.count())
}

func TestSession_FailureKeepsPreviousResults(t *testing.T) {
	r, _, ss := newRegistry(t)
	sess, err := r.Open(context.Background(), "tok", guest)
	require.NoError(t, err)

	sess.SetCriteria(models.FilterCriteria{Name: "kumar"})
	view := waitLoaded(t, sess)
	require.Equal(t, 1, view.Total)

	ss.fail(models.Remote("fetch voters", fmt.Errorf("connection refused")))
	sess.SetCriteria(models.FilterCriteria{Name: "sharma"})
	view = waitLoaded(t, sess)
	assert.NotEmpty(t, view.Error)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "1", view.Voters[0].ID)
}

func TestSession_ViewMarksCalledVoters(t *testing.T) {
	r, ms, _ := newRegistry(t)
	ctx := context.Background()
	sess, err := r.Open(ctx, "tok", guest)
	require.NoError(t, err)

	sess.SetCriteria(models.FilterCriteria{Name: "kumar"})
	waitLoaded(t, sess)

	called, err := sess.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.True(t, called)

	view := sess.View()
	require.Len(t, view.Voters, 1)
	assert.True(t, view.Voters[0].Called)

	events, err := ms.FetchCallEvents(ctx, "guest_1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSession_ApplyIgnoresSupersededDelivery(t *testing.T) {
	r, _, _ := newRegistry(t)
	sess, err := r.Open(context.Background(), "tok", guest)
	require.NoError(t, err)

	sess.SetCriteria(models.FilterCriteria{Name: "sharma"})
	waitLoaded(t, sess)

	applied := sess.Apply(Delivery{Seq: 0, Results: []models.VoterRecord{{ID: "99"}}})
	assert.False(t, applied)
	assert.Equal(t, 4, sess.View().Total)
}

func TestRegistry_SweepAndClose(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()
	a, err := r.Open(ctx, "a", guest)
	require.NoError(t, err)
	_, err = r.Open(ctx, "b", models.Identity{ID: "guest_2"})
	require.NoError(t, err)

	a.lastSeen.Store(time.Now().Add(-2 * time.Hour))
	assert.Equal(t, 1, r.Sweep())
	_, ok := r.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	r.Close("b")
	assert.Zero(t, r.Len())
	r.Close("missing")
}

func TestSession_Idle(t *testing.T) {
	sess := &Session{}
	sess.Touch()
	assert.False(t, sess.Idle(time.Minute))
	assert.False(t, sess.Idle(0))
	sess.lastSeen.Store(time.Now().Add(-time.Hour))
	assert.True(t, sess.Idle(time.Minute))
}
