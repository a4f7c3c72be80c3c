package controllers

import (
	"bytes"
	"calltracker/internal/services"
	"net/http"
)

type SlipController struct {
	*ApiController
	roster services.RosterServiceInterface
	slips  services.SlipServiceInterface
}

func NewSlipController(base *ApiController, roster services.RosterServiceInterface, slips services.SlipServiceInterface) *SlipController {
	return &SlipController{ApiController: base, roster: roster, slips: slips}
}

type lookupResponse struct {
	Query   string          `json:"query"`
	Results []services.Slip `json:"results"`
}

func (sc *SlipController) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	voters, err := sc.roster.Lookup(r.Context(), q)
	if err != nil {
		sc.writeError(w, r, err)
		return
	}
	resp := lookupResponse{Query: q, Results: make([]services.Slip, len(voters))}
	for i, v := range voters {
		resp.Results[i] = sc.slips.Slip(v)
	}
	sc.writeJSON(w, http.StatusOK, resp)
}

func (sc *SlipController) View(w http.ResponseWriter, r *http.Request) {
	voter, err := sc.roster.Voter(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		sc.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := sc.slips.RenderHTML(&buf, sc.slips.Slip(*voter)); err != nil {
		sc.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

