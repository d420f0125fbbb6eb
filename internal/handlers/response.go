package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/forms"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// logFailure records an API failure with its category. Shoppers only ever
// see the page's fixed message.
func logFailure(logger *slog.Logger, msg string, err error, args ...any) {
	if errors.Is(err, forms.ErrInvalid) {
		logger.Info(msg, append(args, "category", "invalid-form", "error", err)...)
		return
	}

	category := apiclient.Categorize(err)
	level := slog.LevelWarn
	if category == apiclient.CategoryTransport {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, msg, append(args, "category", category.String(), "error", err)...)
}

// redirect finishes a successful form post (Post/Redirect/Get)
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// postForm returns the parsed form body. A malformed body reads as empty,
// which then fails the form's own validation.
func postForm(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		return url.Values{}
	}
	return r.PostForm
}
