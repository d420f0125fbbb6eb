// Package render turns page state into HTML using the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

// Renderer holds one parsed template set per page
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// Funcs are the helpers available to every template
var Funcs = template.FuncMap{
	"money":    Money,
	"datetime": DateTime,
}

// New parses the layout together with every page under templates/pages
func New(logger *slog.Logger) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "list page templates")
	}

	r := &Renderer{
		pages:  make(map[string]*template.Template, len(files)),
		logger: logger,
	}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(Funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, errors.Wrapf(err, "parse page %s", name)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Page renders a full HTML document
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) {
	r.execute(w, status, name, "layout", data)
}

// Fragment renders one named block of a page without the layout
func (r *Renderer) Fragment(w http.ResponseWriter, status int, name, block string, data any) {
	r.execute(w, status, name, block, data)
}

func (r *Renderer) execute(w http.ResponseWriter, status int, name, block string, data any) {
	t, ok := r.pages[name]
	if !ok {
		r.logger.Error("unknown page template", "page", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.logger.Error("failed to render page", "page", name, "block", block, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("failed to write page", "page", name, "error", err)
	}
}

// Money formats an amount as dollars with two decimals. A nil amount
// renders as an empty string.
func Money(v any) string {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return ""
		}
		d = *x
	case float64:
		d = decimal.NewFromFloat(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	default:
		return fmt.Sprint(v)
	}
	return "$" + d.StringFixed(2)
}

// DateTime formats an RFC 3339 timestamp for display. Anything else is
// returned unchanged.
func DateTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}
