package controllers

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/services"
	"calltracker/internal/session"
	"calltracker/internal/structures"
	"errors"
	"net/http"

	"github.com/spf13/cast"
)

type VoterController struct {
	*ApiController
	roster   services.RosterServiceInterface
	metrics  providers.MetricsProviderInterface
	pageSize int
}

func NewVoterController(base *ApiController, roster services.RosterServiceInterface, metrics providers.MetricsProviderInterface, conf *structures.Config) *VoterController {
	return &VoterController{ApiController: base, roster: roster, metrics: metrics, pageSize: conf.Search.PageSize}
}

type countResponse struct {
	Total int `json:"total"`
}

func (vc *VoterController) Count(w http.ResponseWriter, r *http.Request) {
	vc.serveFromCacheOrCompute(w, r, cacheKeyVoterCount, func() (any, error) {
		n, err := vc.roster.Count(r.Context())
		if err != nil {
			return nil, err
		}
		return countResponse{Total: n}, nil
	})
}

type searchRequest struct {
	Criteria models.FilterCriteria `json:"criteria"`
	Page     int                   `json:"page"`
}

// Search is the stateless variant: one request, one page.
func (vc *VoterController) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		vc.writeError(w, r, models.ErrUnauthorized)
		return
	}
	var req searchRequest
	if !vc.decode(w, r, &req) {
		return
	}
	criteria := req.Criteria.Normalize()
	voters, err := vc.roster.Search(r.Context(), criteria)
	if err != nil {
		vc.writeError(w, r, err)
		return
	}
	p := models.NewPaginator(voters, vc.pageSize)
	p.Goto(req.Page)
	vc.writeJSON(w, http.StatusOK, models.NewPageView(criteria, p, sess.Tracker().IsCalled))
}

// SetCriteria feeds the session's debounced search and answers with the
// current (loading) view.
func (vc *VoterController) SetCriteria(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		vc.writeError(w, r, models.ErrUnauthorized)
		return
	}
	var criteria models.FilterCriteria
	if !vc.decode(w, r, &criteria) {
		return
	}
	sess.SetCriteria(criteria)
	vc.writeJSON(w, http.StatusAccepted, sess.View())
}

func (vc *VoterController) Results(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		vc.writeError(w, r, models.ErrUnauthorized)
		return
	}
	q := r.URL.Query()
	nav := session.Nav(q.Get("nav"))
	switch nav {
	case "", session.NavFirst, session.NavPrev, session.NavNext, session.NavLast:
	default:
		vc.writeError(w, r, models.NewValidationError("nav", "must be one of first, prev, next, last"))
		return
	}
	vc.writeJSON(w, http.StatusOK, sess.Navigate(nav, cast.ToInt(q.Get("page"))))
}

type toggleRequest struct {
	VoterID string `json:"voterId"`
}

type toggleResponse struct {
	VoterID string `json:"voterId"`
	Called  bool   `json:"called"`
	Total   int    `json:"callCount"`
}

func (vc *VoterController) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		vc.writeError(w, r, models.ErrUnauthorized)
		return
	}
	var req toggleRequest
	if !vc.decode(w, r, &req) {
		return
	}
	called, err := sess.Toggle(r.Context(), req.VoterID)
	switch {
	case errors.Is(err, models.ErrToggleInFlight):
		vc.metrics.IncToggles("rejected")
	case errors.Is(err, models.ErrValidation):
		vc.metrics.IncToggles("invalid")
	case err != nil:
		vc.metrics.IncToggles("rolled_back")
	default:
		vc.metrics.IncToggles("committed")
		vc.cache.Del(cacheKeyLeaderboard)
	}
	if err != nil {
		vc.writeError(w, r, err)
		return
	}
	vc.writeJSON(w, http.StatusOK, toggleResponse{VoterID: req.VoterID, Called: called, Total: sess.Tracker().Len()})
}
