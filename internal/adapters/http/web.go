package web

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tennisclub/internal/adapters/email"
	"tennisclub/internal/adapters/http/middleware"
	groupSessionStore "tennisclub/internal/adapters/storage/groupsession"
	playerStore "tennisclub/internal/adapters/storage/player"
	reportStore "tennisclub/internal/adapters/storage/report"
	tournamentStore "tennisclub/internal/adapters/storage/tournament"
	planStore "tennisclub/internal/adapters/storage/trainingplan"
)

// Stores holds all storage dependencies.
type Stores struct {
	PlayerStore     playerStore.Store
	TournamentStore tournamentStore.Store
	SessionStore    groupSessionStore.Store
	PlanStore       planStore.Store
	ReportStore     reportStore.Store
}

// Options configures NewMux.
type Options struct {
	CSRFKey        []byte // 32 bytes; a random key is generated when empty
	SecureCookies  bool
	TrustedOrigins []string
	Sender         email.Sender        // nil disables registration confirmations
	Registry       *prometheus.Registry // nil disables /metrics and request metrics
	SlowRequest    time.Duration
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global interaction store (set by NewMux)
var sessions *middleware.SessionStore

// Global email sender instance (set by NewMux)
var emailSender email.Sender

// timeNow is a variable for testability.
var timeNow = time.Now

// randomCSRFKey generates a per-process key. Forms posted before a restart are rejected.
func randomCSRFKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate CSRF key: " + err.Error())
	}
	slog.Warn("csrf_key_random", "hint", "set TENNIS_CSRF_KEY so forms survive restarts")
	return key
}

// NewMux wires HTTP handlers for the app.
// PRE: s has every store set
// POST: returns the full middleware chain around the routes
func NewMux(s *Stores, opts Options) http.Handler {
	stores = s
	emailSender = opts.Sender
	sessions = middleware.NewSessionStore()

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = randomCSRFKey()
	}

	// Only screens carry browser state; probes, scrapes and assets stay cookieless.
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.FileServerFS(assets))
	mux.HandleFunc("GET /healthz", handleHealthz)
	registerRoutes(mux, func(h http.Handler) http.Handler {
		return middleware.Chain(h,
			middleware.Sessions(sessions, opts.SecureCookies),
			middleware.CSRF(csrfKey, opts.SecureCookies, opts.TrustedOrigins),
		)
	})

	var metrics *middleware.HTTPMetrics
	if opts.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
		metrics = middleware.NewHTTPMetrics(opts.Registry)
	}

	// Timing -> SecurityHeaders -> Mux (-> CSRF -> Sessions -> screen handler)
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.Timing(metrics, opts.SlowRequest),
	)
}

// registerRoutes adds the screen routes, each wrapped by screen (nil leaves handlers bare).
func registerRoutes(mux *http.ServeMux, screen func(http.Handler) http.Handler) {
	handle := func(pattern string, h http.HandlerFunc) {
		if screen == nil {
			mux.Handle(pattern, h)
			return
		}
		mux.Handle(pattern, screen(h))
	}

	handle("GET /{$}", handleHome)
	handle("/players", handlePlayers)
	handle("/players/{id}", handlePlayer)

	handle("/tournaments", handleTournaments)
	handle("POST /tournaments/registrations", handlePostRegistrations)

	handle("GET /training", handleTraining)
	handle("POST /training/sessions", handlePostSession)
	handle("POST /training/plans", handlePostPlan)
	handle("POST /training/reports/group", handlePostGroupReport)
	handle("POST /training/reports/group/scores", handlePostGroupScores)
	handle("POST /training/reports/group/cancel", handlePostGroupCancel)
	handle("POST /training/reports/individual", handlePostIndividualReport)
	handle("POST /training/reports/individual/scores", handlePostIndividualScores)
}
