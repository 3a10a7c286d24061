package handlers

import (
	"net/http"
	"time"

	"resolvewise/internal/config"
	"resolvewise/internal/middleware"
	"resolvewise/internal/models"
	"resolvewise/internal/utils"
)

const sessionTTL = 24 * time.Hour

// issueSession signs a session token for the user and sets the cookie. No
// Expires/Max-Age: the cookie lives for the browser session only.
func issueSession(w http.ResponseWriter, cfg config.Config, u *models.User) error {
	tok, err := utils.SignSession(cfg.SessionSecret, models.Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}, sessionTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,              // expire immediately
		Expires:  time.Unix(0, 0), // for older browsers
	})
}
