package controllers

import (
	"calltracker/internal/services"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// SessionCounter reports live sessions.
type SessionCounter interface {
	Len() int
}

type HealthController struct {
	roster    services.RosterServiceInterface
	sessions  SessionCounter
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Strategy      string  `json:"strategy"`
	Sessions      int     `json:"sessions"`
	Voters        int     `json:"voters"`
	StoreError    string  `json:"store_error,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Strategy:      hc.roster.Strategy(),
		Sessions:      hc.sessions.Len(),
	}
	status := http.StatusOK
	voters, err := hc.roster.Count(r.Context())
	if err != nil {
		resp.Status = "degraded"
		resp.StoreError = err.Error()
		status = http.StatusServiceUnavailable
	}
	resp.Voters = voters

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(roster services.RosterServiceInterface, sessions SessionCounter) *HealthController {
	return &HealthController{
		roster:    roster,
		sessions:  sessions,
		startTime: time.Now(),
	}
}
