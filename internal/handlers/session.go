package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie identifies a browser for menu request ordering. It is the
// storefront's own cookie and is not forwarded to the API.
const SessionCookie = "sf_session"

// menuSession returns the browser's session id, issuing one if needed
func menuSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// menuView keys a menu browser to one rendered menu page of a session. The
// view id is issued with each full page render and carried by the page's
// result requests, so tabs of one browser never cancel each other.
func menuView(session, viewID string) string {
	if _, err := uuid.Parse(viewID); err != nil {
		viewID = ""
	}
	return session + "/" + viewID
}
