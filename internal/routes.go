package internal

import (
	"calltracker/internal/controllers"
	"calltracker/internal/providers"
	"net/http"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Voters      *controllers.VoterController
	Leaderboard *controllers.LeaderboardController
	Slips       *controllers.SlipController
	Exports     *controllers.ExportController
}

func NewControllers(auth *controllers.AuthController, voters *controllers.VoterController, leaderboard *controllers.LeaderboardController, slips *controllers.SlipController, exports *controllers.ExportController) *Controllers {
	return &Controllers{Auth: auth, Voters: voters, Leaderboard: leaderboard, Slips: slips, Exports: exports}
}

func InitRoutes(c *Controllers) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()
	session := c.Auth.RequireSession

	routers.Post("/login", http.HandlerFunc(c.Auth.Login))
	routers.Post("/logout", http.HandlerFunc(c.Auth.Logout))
	routers.Get("/voters/count", http.HandlerFunc(c.Voters.Count))
	routers.Get("/leaderboard", http.HandlerFunc(c.Leaderboard.Leaderboard))
	routers.Get("/slip", http.HandlerFunc(c.Slips.Lookup))
	routers.Get("/slip/view", http.HandlerFunc(c.Slips.View))

	routers.Get("/me", session(http.HandlerFunc(c.Auth.Me)))
	routers.Post("/search", session(http.HandlerFunc(c.Voters.Search)))
	routers.Put("/session/criteria", session(http.HandlerFunc(c.Voters.SetCriteria)))
	routers.Get("/session/results", session(http.HandlerFunc(c.Voters.Results)))
	routers.Post("/session/toggle", session(http.HandlerFunc(c.Voters.Toggle)))
	routers.Post("/export", session(http.HandlerFunc(c.Exports.Export)))
	return routers
}
