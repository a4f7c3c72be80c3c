package internal

import (
	"calltracker/internal/persistence/interfaces"
	"calltracker/internal/providers"
	"calltracker/internal/roster"
	"calltracker/internal/store"
	"context"
)

// RosterJob runs a one-shot roster import against the configured store.
type RosterJob struct {
	importer  *roster.Importer
	records   store.RecordStore
	scheduler interfaces.SchedulerInterface
	logger    providers.Logger
}

func NewRosterJob(importer *roster.Importer, records store.RecordStore, scheduler interfaces.SchedulerInterface, logger providers.Logger) *RosterJob {
	return &RosterJob{importer: importer, records: records, scheduler: scheduler, logger: logger}
}

// Run imports fileName. For the memory store the existing snapshot is
// restored first and the result is written back, so the import survives.
func (j *RosterJob) Run(ctx context.Context, fileName string) (roster.Result, error) {
	defer j.records.Close()

	if err := j.scheduler.Restore(); err != nil {
		return roster.Result{}, err
	}
	res, err := j.importer.Import(ctx, fileName)
	if err != nil {
		return res, err
	}
	if err := j.scheduler.Persist(); err != nil {
		return res, err
	}
	j.logger.Infof(providers.TypeApp, "Imported %d of %d records from %s", res.Upserted, res.Read, fileName)
	return res, nil
}
