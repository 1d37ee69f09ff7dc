package web

import (
	"net/http"
)

// landingSection is one card on the landing page.
type landingSection struct {
	Title    string
	Link     string
	Features []string
}

var landingSections = []landingSection{
	{
		Title: "Players",
		Link:  "/players",
		Features: []string{
			"Register players with level and age group",
			"Search the roster across every column",
			"Edit player details",
		},
	},
	{
		Title: "Tournaments",
		Link:  "/tournaments",
		Features: []string{
			"Create tournaments",
			"Browse the monthly calendar",
			"Register players and send confirmations",
		},
	},
	{
		Title: "Training",
		Link:  "/training",
		Features: []string{
			"Schedule group sessions",
			"Plan individual training",
			"Write reports and record PSE scores",
		},
	},
}

// handleHome renders the landing page (GET /)
func handleHome(w http.ResponseWriter, r *http.Request) {
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	renderTemplate(w, r, "home.html", map[string]any{
		"Active":   "home",
		"Sections": landingSections,
	})
}

// handleHealthz answers liveness probes (GET /healthz)
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
