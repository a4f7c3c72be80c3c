// Package guest keeps the client token -> guest identity mapping that lets
// a volunteer come back without logging in again.
package guest

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/structures"
	"fmt"
)

// Key is the fixed product key every guest entry is stored under.
const Key = "campaignTrackerGuest"

// Store persists guest identities. Load and Touch return models.ErrNotFound
// for an unknown token; Clear of an unknown token succeeds.
type Store interface {
	Load(token string) (models.Identity, error)
	Save(token string, identity models.Identity) error
	// Touch restarts the expiry of a live entry.
	Touch(token string) error
	Clear(token string) error
}

func entryKey(token string) string {
	return Key + ":" + token
}

func NewStore(conf *structures.Config, logger providers.Logger) (Store, error) {
	switch conf.Session.GuestStore {
	case "file":
		logger.Infof(providers.TypeApp, "Guest sessions stored in %s", conf.Session.GuestFile)
		return NewFileStore(conf.Session.GuestFile)
	case "cache", "":
		logger.Infof(providers.TypeApp, "Guest sessions stored in memory (%dMB)", max(conf.Session.GuestCacheSize, 1))
		return NewCacheStore(conf.Session.GuestCacheSize, conf.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown guest store %q", conf.Session.GuestStore)
	}
}
