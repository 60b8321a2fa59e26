package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"taskNotes/internal/render"
)

// Flash messages ride in a short-lived cookie: set on a mutation, read and
// cleared on the next rendered page. No server-side session state.

const flashCookieName = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

func setFlash(w http.ResponseWriter, level, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(level + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash, if any, and expires the cookie so the
// message shows exactly once.
func popFlash(w http.ResponseWriter, r *http.Request) *render.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	level, message, ok := strings.Cut(string(decoded), "|")
	if !ok || message == "" {
		return nil
	}
	if level != flashSuccess && level != flashError {
		return nil
	}

	return &render.Flash{Level: level, Message: message}
}
