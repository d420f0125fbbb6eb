package middleware

import (
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
)

// ForwardCredentials relays the browser's Authorization header and cookies
// to the API through the request context, so the API alone decides who is
// signed in. Cookies named in skip belong to the storefront and are dropped.
func ForwardCredentials(skip ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds := apiclient.Credentials{
				Authorization: r.Header.Get("Authorization"),
				Cookie:        forwardedCookies(r, skip),
			}

			if creds != (apiclient.Credentials{}) {
				r = r.WithContext(apiclient.WithCredentials(r.Context(), creds))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func forwardedCookies(r *http.Request, skip []string) string {
	if len(skip) == 0 {
		return r.Header.Get("Cookie")
	}

	var kept []string
	for _, c := range r.Cookies() {
		dropped := false
		for _, name := range skip {
			if c.Name == name {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, c.Name+"="+c.Value)
		}
	}
	return strings.Join(kept, "; ")
}
