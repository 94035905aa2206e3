package controllers

import (
	"net/http"
	"time"

	"ranking-uni/models"
	"ranking-uni/utils"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// ResolveSession resolves the cookie credential pair to a stable user id.
// A single attempt is made per request; any missing, invalid or expired
// credential yields ErrUnauthenticated and the caller must treat the pair
// as revoked.
func ResolveSession(r *http.Request) (int, error) {
	access, err := r.Cookie(accessCookieName)
	if err != nil || access.Value == "" {
		return 0, models.ErrUnauthenticated
	}
	refresh, err := r.Cookie(refreshCookieName)
	if err != nil || refresh.Value == "" {
		return 0, models.ErrUnauthenticated
	}

	userID, err := utils.ParseUserID(access.Value)
	if err != nil {
		return 0, models.ErrUnauthenticated
	}
	return userID, nil
}

// SetSessionCookies installs a freshly minted credential pair.
func SetSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookies revokes the credential pair on the client after a
// failed resolution.
func ClearSessionCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	http.SetCookie(w, &http.Cookie{
		Name:    accessCookieName,
		Value:   "",
		Path:    "/",
		Expires: expired,
		MaxAge:  -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:    refreshCookieName,
		Value:   "",
		Path:    "/",
		Expires: expired,
		MaxAge:  -1,
	})
}
