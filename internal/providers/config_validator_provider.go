package providers

import (
	"calltracker/internal/structures"
	"errors"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (v *CnfValidator) Validate() error {
	vd := validate.Struct(v.conf)
	if !vd.Validate() {
		return vd.Errors.ErrOrNil()
	}

	switch v.conf.Store.Driver {
	case "postgres":
		if v.conf.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres store")
		}
	case "memory":
		if v.conf.Store.SnapshotPath == "" {
			return errors.New("store.snapshotPath is required for the memory store")
		}
	}
	if v.conf.Session.GuestStore == "file" && v.conf.Session.GuestFile == "" {
		return errors.New("session.guestFile is required for the file guest store")
	}
	if v.conf.Search.PageSize < 0 {
		return errors.New("search.pageSize must not be negative")
	}
	return nil
}
