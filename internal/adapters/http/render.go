package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"tennisclub/internal/adapters/http/middleware"
	"tennisclub/internal/adapters/storage/gateway"
)

//go:embed templates/*.html static/*
var assets embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var pageNames = []string{
	"home.html",
	"players.html",
	"player_edit.html",
	"tournaments.html",
	"training.html",
}

var baseFuncs = template.FuncMap{
	"renderMarkdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
	"add": func(a, b int) int { return a + b },
	"seq": func(from, to int) []int {
		var s []int
		for i := from; i <= to; i++ {
			s = append(s, i)
		}
		return s
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	},
	"month":      func(t time.Time) string { return t.Format(monthLayout) },
	"monthTitle": func(t time.Time) string { return t.Format("January 2006") },
	"join":       func(items []string) string { return strings.Join(items, ", ") },
	"dict": func(kv ...any) map[string]any {
		m := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
		return m
	},
	// Replaced per request.
	"csrfField": func() template.HTML { return "" },
	"csrfToken": func() string { return "" },
}

// pages maps a page template to its parsed layout+page set.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		out[name] = template.Must(template.New("layout.html").Funcs(baseFuncs).
			ParseFS(assets, "templates/layout.html", "templates/"+name))
	}
	return out
}

// interaction returns the browser state attached by the session middleware.
// Handlers called without the middleware get throwaway state.
func interaction(r *http.Request) *middleware.Interaction {
	if it, ok := middleware.InteractionFromContext(r.Context()); ok {
		return it
	}
	return middleware.NewInteraction()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// errorMessage renders err for a flash. Store failures already read "Error <action>: <cause>".
func errorMessage(action string, err error) string {
	if _, ok := gateway.AsFailure(err); ok {
		return err.Error()
	}
	return fmt.Sprintf("Error %s: %v", action, err)
}

// renderTemplate executes layout.html around the named page.
// It drains the interaction's flashes and ends the submit round trip.
// PRE: caller holds the interaction lock
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	base, ok := pages[templateName]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %q", templateName))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tpl.Funcs(template.FuncMap{
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"csrfToken": func() string { return csrf.Token(r) },
	})

	it := interaction(r)
	data["Flashes"] = it.TakeFlashes()
	it.EndRoundTrip()

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// redirect ends a POST with 303 See Other.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
