package controllers

import (
	"calltracker/internal/services"
	"net/http"
)

type LeaderboardController struct {
	*ApiController
	service services.LeaderboardServiceInterface
}

func NewLeaderboardController(base *ApiController, service services.LeaderboardServiceInterface) *LeaderboardController {
	return &LeaderboardController{ApiController: base, service: service}
}

func (lc *LeaderboardController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	lc.serveFromCacheOrCompute(w, r, cacheKeyLeaderboard, func() (any, error) {
		return lc.service.Build(r.Context())
	})
}
