package roster

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/store"
	"context"
	"fmt"
)

const BatchSize = 500

type Reader interface {
	ReadRoster(fileName string) ([]models.VoterRecord, error)
}

type Result struct {
	Read     int `json:"read"`
	Unique   int `json:"unique"`
	Upserted int `json:"upserted"`
}

type Importer struct {
	reader Reader
	store  store.RecordStore
	logger providers.Logger
}

func NewImporter(reader Reader, store store.RecordStore, logger providers.Logger) *Importer {
	return &Importer{reader: reader, store: store, logger: logger}
}

// Import reads fileName, normalizes it and upserts the result in batches.
// Batches already written stay written when a later one fails.
func (im *Importer) Import(ctx context.Context, fileName string) (Result, error) {
	raw, err := im.reader.ReadRoster(fileName)
	if err != nil {
		return Result{}, err
	}
	voters := Normalize(raw)
	res := Result{Read: len(raw), Unique: len(voters)}
	im.logger.Infof(providers.TypeApp, "Roster %s: %d records, %d unique", fileName, res.Read, res.Unique)

	for start := 0; start < len(voters); start += BatchSize {
		end := min(start+BatchSize, len(voters))
		n, err := im.store.UpsertVoters(ctx, voters[start:end])
		res.Upserted += n
		if err != nil {
			return res, models.Remote(fmt.Sprintf("upsert voters %d-%d", start+1, end), err)
		}
		if (start/BatchSize)%10 == 0 {
			im.logger.Debugf(providers.TypeApp, "Uploaded %d/%d", end, len(voters))
		}
	}
	im.logger.Infof(providers.TypeApp, "Roster import finished: %d voters upserted", res.Upserted)
	return res, nil
}
