// Package widget renders the menu page: a date label with a click-to-toggle
// view, and the two meal blocks (or a single error message replacing both).
package widget

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"school-menu/internal/cache"
	"school-menu/internal/fetcher"
	"school-menu/internal/schoolday"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>School Menu</title>
<style>
body { font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; line-height: 1.6; }
.current-date { font-size: 1.2em; font-weight: bold; margin-bottom: 20px; color: #333; }
.current-date a { color: inherit; text-decoration: none; }
.menu-container { background: #f4f4f4; padding: 0 14px; margin: 10px 0; border-radius: 6px; border-left: 4px solid #368dda; }
.meal-section h3 { margin: 0; font-size: 1.2em; padding: 14px 0 6px 0; color: #333; }
.meal-content { margin: 8px 0 0 24px; line-height: 1.4; padding-bottom: 12px; white-space: pre-line; }
.error { color: #d32f2f; font-weight: bold; padding: 14px 0; }
hr { border: none; border-top: 2px solid #dadada; margin: 0; }
</style>
</head>
<body>
<div class="current-date"><a href="{{.ToggleURL}}" title="{{.ToggleTitle}}">{{.Label}} — {{.DateText}}</a></div>
<div class="menu-container">
{{- if .Error}}
<div class="error">Error: {{.Error}}</div>
{{- else}}
<div class="meal-section">
<h3>🍳 Breakfast</h3>
<div class="meal-content" id="breakfast">{{.Breakfast}}</div>
</div>
<hr>
<div class="meal-section">
<h3>🍕 Lunch</h3>
<div class="meal-content" id="lunch">{{.Lunch}}</div>
</div>
{{- end}}
</div>
</body>
</html>
`

var page = template.Must(template.New("widget").Parse(pageTemplate))

type pageData struct {
	Label       string
	DateText    string
	ToggleURL   string
	ToggleTitle string
	Breakfast   string
	Lunch       string
	Error       string
}

// Handler serves the server-rendered menu widget page.
type Handler struct {
	fetcher *fetcher.Fetcher
	cache   *cache.MenuCache
	now     func() time.Time
}

// NewHandler creates the widget page handler. The cache may be nil.
func NewHandler(f *fetcher.Fetcher, c *cache.MenuCache) *Handler {
	return &Handler{fetcher: f, cache: c, now: time.Now}
}

// ServeHTTP renders the menu for the requested view. Each request resolves its
// own date from its own view parameter, so a toggle arriving while another
// request is in flight can never overwrite the newer page with stale data.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := schoolday.Today
	if r.URL.Query().Get("view") == "next" {
		view = schoolday.NextDay
	}

	if h.cache != nil {
		h.cache.SweepExpired()
	}

	date, label := schoolday.Resolve(h.now(), view)
	data := pageData{
		Label:    label,
		DateText: date.Format("Monday, January 2, 2006"),
	}
	if view == schoolday.Today {
		data.ToggleURL = "?view=next"
		data.ToggleTitle = "Show the next school day"
	} else {
		data.ToggleURL = "?view=today"
		data.ToggleTitle = "Show today"
	}

	m, err := h.fetcher.FetchMenu(r.Context(), date.Format(schoolday.DateLayout))
	if err != nil {
		log.Printf("Widget fetch failed for %s: %v", date.Format(schoolday.DateLayout), err)
		data.Error = err.Error()
	} else {
		data.Breakfast = m.Breakfast
		data.Lunch = m.Lunch
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		log.Printf("Error rendering widget page: %v", err)
	}
}
