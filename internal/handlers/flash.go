package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"resolvewise/internal/views"
)

const flashCookie = "flash"

// setFlash stores a one-shot banner for the next rendered page. Carried in
// a cookie so it survives the POST -> redirect -> GET hop.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// takeFlash reads and clears the pending banner, if any.
func takeFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}
	return &views.Flash{Kind: kind, Message: message}
}
