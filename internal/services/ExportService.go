package services

import (
	"bytes"
	"calltracker/internal/export"
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/store"
	"context"
	"time"

	"github.com/google/uuid"
)

// ExportResult is a rendered document ready to be sent to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Count       int
}

type ExportServiceInterface interface {
	Export(ctx context.Context, identityID string, typ models.ExportType, criteria models.FilterCriteria) (*ExportResult, error)
}

type ExportService struct {
	roster  RosterServiceInterface
	store   store.RecordStore
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	now     func() time.Time
}

func NewExportService(roster RosterServiceInterface, store store.RecordStore, metrics providers.MetricsProviderInterface, logger providers.Logger) *ExportService {
	return &ExportService{
		roster:  roster,
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Export searches without any row cap, renders the result and records an
// export event. A failure to record the event is logged; the document is
// still returned.
func (es *ExportService) Export(ctx context.Context, identityID string, typ models.ExportType, criteria models.FilterCriteria) (*ExportResult, error) {
	renderer, err := export.New(typ)
	if err != nil {
		return nil, err
	}

	voters, err := es.roster.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	generated := es.now()
	var buf bytes.Buffer
	if err := renderer.Render(&buf, voters, criteria, generated); err != nil {
		return nil, err
	}

	ev := models.ExportEvent{
		ID:         uuid.NewString(),
		IdentityID: identityID,
		Type:       typ,
		CreatedAt:  generated.UTC(),
	}
	if err := es.store.InsertExportEvent(ctx, ev); err != nil {
		es.logger.Errorf(providers.TypeApp, "Export event for %s not recorded: %v", identityID, err)
	}
	es.metrics.IncExports(string(typ))

	return &ExportResult{
		Filename:    renderer.Filename(criteria, generated),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
		Count:       len(voters),
	}, nil
}
