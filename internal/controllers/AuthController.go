package controllers

import (
	"calltracker/internal/guest"
	"calltracker/internal/models"
	"calltracker/internal/services"
	"calltracker/internal/structures"
	"net/http"
	"strings"
)

// TokenHeader lets non-browser clients pass the guest token without cookies.
const TokenHeader = "X-Guest-Token"

type AuthController struct {
	*ApiController
	guests services.GuestServiceInterface
	conf   *structures.Config
}

func NewAuthController(base *ApiController, guests services.GuestServiceInterface, conf *structures.Config) *AuthController {
	return &AuthController{ApiController: base, guests: guests, conf: conf}
}

type loginResponse struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"identity"`
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form services.LoginForm
	if !ac.decode(w, r, &form) {
		return
	}
	sess, err := ac.guests.Login(r.Context(), form)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.cache.Del(cacheKeyLeaderboard)
	http.SetCookie(w, ac.cookie(sess.Token, ac.maxAge()))
	ac.writeJSON(w, http.StatusCreated, loginResponse{Token: sess.Token, Identity: sess.Identity})
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := tokenFrom(r); token != "" {
		if err := ac.guests.Logout(token); err != nil {
			ac.writeError(w, r, err)
			return
		}
	}
	http.SetCookie(w, ac.cookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		ac.writeError(w, r, models.ErrUnauthorized)
		return
	}
	profile, err := ac.guests.Profile(r.Context(), sess)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, http.StatusOK, profile)
}

// RequireSession resolves the guest token to a live session or answers 401.
// A cookie-borne token gets its cookie re-issued so an active guest never
// hits the original expiry.
func (ac *AuthController) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := ac.guests.Resume(r.Context(), tokenFrom(r))
		if err != nil {
			ac.writeError(w, r, err)
			return
		}
		if c, err := r.Cookie(guest.Key); err == nil && c.Value == sess.Token {
			http.SetCookie(w, ac.cookie(sess.Token, ac.maxAge()))
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

func (ac *AuthController) maxAge() int {
	return int(ac.conf.Session.TTL.Seconds())
}

func (ac *AuthController) cookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     guest.Key,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func tokenFrom(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get(TokenHeader)); h != "" {
		return h
	}
	if c, err := r.Cookie(guest.Key); err == nil {
		return c.Value
	}
	return ""
}

