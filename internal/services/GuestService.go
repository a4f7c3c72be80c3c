package services

import (
	"calltracker/internal/guest"
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/session"
	"calltracker/internal/store"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

const guestSuffixLen = 9

type LoginForm struct {
	DisplayName string `json:"displayName" validate:"required|minLen:2"`
}

func (f LoginForm) Messages() map[string]string {
	return validate.MS{
		"required":  "Please enter your name",
		"minLen":    "Name must be at least 2 characters",
		"minLength": "Name must be at least 2 characters",
	}
}

// Profile is the navbar data for a logged-in guest.
type Profile struct {
	Identity    models.Identity `json:"identity"`
	CallCount   int             `json:"callCount"`
	ExportCount int             `json:"exportCount"`
}

type GuestServiceInterface interface {
	Login(ctx context.Context, form LoginForm) (*session.Session, error)
	Resume(ctx context.Context, token string) (*session.Session, error)
	Logout(token string) error
	Profile(ctx context.Context, sess *session.Session) (*Profile, error)
}

// GuestService handles the guest identity lifecycle: login creates the
// identity and a session, resume restores it from the guest store, logout
// clears both.
type GuestService struct {
	store    store.RecordStore
	guests   guest.Store
	registry *session.Registry
	logger   providers.Logger
	now      func() time.Time
}

func NewGuestService(store store.RecordStore, guests guest.Store, registry *session.Registry, logger providers.Logger) *GuestService {
	return &GuestService{
		store:    store,
		guests:   guests,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (gs *GuestService) Login(ctx context.Context, form LoginForm) (*session.Session, error) {
	form.DisplayName = strings.TrimSpace(form.DisplayName)
	if err := validateLogin(form); err != nil {
		return nil, err
	}

	now := gs.now()
	identity := models.Identity{
		ID:          newGuestID(now),
		DisplayName: form.DisplayName,
		CreatedAt:   now.UTC(),
	}
	if err := gs.store.UpsertIdentity(ctx, identity); err != nil {
		return nil, remote("create guest", err)
	}

	token := uuid.NewString()
	if err := gs.guests.Save(token, identity); err != nil {
		return nil, fmt.Errorf("save guest session: %w", err)
	}
	sess, err := gs.registry.Open(ctx, token, identity)
	if err != nil {
		_ = gs.guests.Clear(token)
		return nil, err
	}
	gs.logger.Infof(providers.TypeApp, "Guest %s logged in as %q", identity.ID, identity.DisplayName)
	return sess, nil
}

func validateLogin(form LoginForm) error {
	v := validate.Struct(&form)
	if !v.Validate() {
		return models.NewValidationError("displayName", v.Errors.One())
	}
	if utf8.RuneCountInString(form.DisplayName) < models.MinDisplayNameLength {
		return models.NewValidationError("displayName", "Name must be at least 2 characters")
	}
	return nil
}

// newGuestID builds guest_<unix ms>_<9 random chars>.
func newGuestID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:guestSuffixLen]
	return fmt.Sprintf("guest_%d_%s", now.UnixMilli(), suffix)
}

// Resume returns the live session for token, reopening it from the guest
// store after a restart or sweep. Every resume restarts the guest entry's
// expiry.
func (gs *GuestService) Resume(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	if sess, ok := gs.registry.Get(token); ok {
		gs.refresh(token, sess.Identity)
		return sess, nil
	}

	identity, err := gs.guests.Load(token)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load guest session: %w", err)
	}
	gs.refresh(token, identity)
	// the store may have been reset since the guest logged in
	if err := gs.store.UpsertIdentity(ctx, identity); err != nil {
		return nil, remote("restore guest", err)
	}
	return gs.registry.Open(ctx, token, identity)
}

// refresh slides the guest entry's expiry, saving it again if it was
// evicted while the session stayed live.
func (gs *GuestService) refresh(token string, identity models.Identity) {
	err := gs.guests.Touch(token)
	if errors.Is(err, models.ErrNotFound) {
		err = gs.guests.Save(token, identity)
	}
	if err != nil {
		gs.logger.Warnf(providers.TypeApp, "Refresh guest %s: %v", identity.ID, err)
	}
}

func (gs *GuestService) Logout(token string) error {
	gs.registry.Close(token)
	return gs.guests.Clear(token)
}

func (gs *GuestService) Profile(ctx context.Context, sess *session.Session) (*Profile, error) {
	exports, err := gs.store.CountExportEvents(ctx, sess.Identity.ID)
	if err != nil {
		return nil, remote("count exports", err)
	}
	return &Profile{
		Identity:    sess.Identity,
		CallCount:   sess.Tracker().Len(),
		ExportCount: exports,
	}, nil
}
