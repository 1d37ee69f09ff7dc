package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/wizard"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const interactionContextKey contextKey = "interaction"

// SessionTTL is how long an idle browser keeps its interaction state.
const SessionTTL = 24 * time.Hour

const sessionCookieName = "tennisclub_session"

// sweepInterval bounds how often Create scans for expired entries.
const sweepInterval = time.Hour

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Kind string
	Text string
}

// Interaction is the state one browser carries between requests: pending messages,
// both report wizards and the duplicate-submit flag.
// Callers hold Lock for the whole request so one browser's requests are serialized.
type Interaction struct {
	mu         sync.Mutex
	lastSeen   time.Time
	flashes    []Flash
	submitted  bool
	group      *wizard.Wizard
	individual *wizard.Wizard
}

func newInteraction(now time.Time) *Interaction {
	group, _ := wizard.New(report.TypeGroup)
	individual, _ := wizard.New(report.TypeIndividual)
	return &Interaction{lastSeen: now, group: group, individual: individual}
}

// NewInteraction returns fresh state, for handlers exercised without the session middleware.
func NewInteraction() *Interaction {
	return newInteraction(time.Now())
}

// Lock acquires the interaction for the current request.
func (i *Interaction) Lock() { i.mu.Lock() }

// Unlock releases the interaction.
func (i *Interaction) Unlock() { i.mu.Unlock() }

// GroupWizard returns the group report wizard.
func (i *Interaction) GroupWizard() *wizard.Wizard { return i.group }

// IndividualWizard returns the individual report wizard.
func (i *Interaction) IndividualWizard() *wizard.Wizard { return i.individual }

// AddFlash queues a message for the next render.
func (i *Interaction) AddFlash(kind, text string) {
	i.flashes = append(i.flashes, Flash{Kind: kind, Text: text})
}

// TakeFlashes returns and clears the queued messages.
func (i *Interaction) TakeFlashes() []Flash {
	out := i.flashes
	i.flashes = nil
	return out
}

// ClaimSubmit reports whether a form submission may be processed, and marks it processed.
// A second submission before the next render is refused.
// POST: Submitted() is true
func (i *Interaction) ClaimSubmit() bool {
	if i.submitted {
		return false
	}
	i.submitted = true
	return true
}

// EndRoundTrip clears the duplicate-submit flag once the screen has been rendered again.
func (i *Interaction) EndRoundTrip() { i.submitted = false }

// Submitted reports whether a submission is waiting for its round trip to end.
func (i *Interaction) Submitted() bool { return i.submitted }

// SessionStore is an in-memory map from cookie token to interaction state.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*Interaction
	lastSweep time.Time
	now       func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Interaction),
		now:      time.Now,
	}
}

// Create stores fresh state under a new random token.
// Expired entries are swept at most once per sweepInterval.
// POST: Get(token) returns the same *Interaction
func (ss *SessionStore) Create() (string, *Interaction) {
	token := uuid.NewString()
	now := ss.now()
	it := newInteraction(now)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if now.Sub(ss.lastSweep) >= sweepInterval {
		ss.sweepLocked(now)
	}
	ss.sessions[token] = it
	return token, it
}

// sweepLocked removes entries idle for longer than SessionTTL.
// PRE: ss.mu is held for writing
func (ss *SessionStore) sweepLocked(now time.Time) {
	removed := 0
	for token, it := range ss.sessions {
		if !it.mu.TryLock() {
			continue // in use by a request, so not idle
		}
		expired := now.Sub(it.lastSeen) > SessionTTL
		it.mu.Unlock()
		if expired {
			delete(ss.sessions, token)
			removed++
		}
	}
	ss.lastSweep = now
	if removed > 0 {
		slog.Debug("session_event", "event", "expired_swept", "removed", removed, "live", len(ss.sessions))
	}
}

// Get retrieves the interaction for token and refreshes its idle timer.
// POST: expired entries are removed and reported as missing
func (ss *SessionStore) Get(token string) (*Interaction, bool) {
	ss.mu.RLock()
	it, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := ss.now()
	it.mu.Lock()
	expired := now.Sub(it.lastSeen) > SessionTTL
	if !expired {
		it.lastSeen = now
	}
	it.mu.Unlock()

	if expired {
		ss.mu.Lock()
		delete(ss.sessions, token)
		ss.mu.Unlock()
		return nil, false
	}
	return it, true
}

// Len returns the number of live entries.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// Sessions returns middleware that attaches the browser's interaction to the request context,
// issuing a cookie when the browser has none or its state expired.
func Sessions(store *SessionStore, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var it *Interaction
			if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				it, _ = store.Get(cookie.Value)
			}
			if it == nil {
				var token string
				token, it = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithInteraction(r.Context(), it)))
		})
	}
}

// WithInteraction returns ctx carrying it.
func WithInteraction(ctx context.Context, it *Interaction) context.Context {
	return context.WithValue(ctx, interactionContextKey, it)
}

// InteractionFromContext retrieves the interaction set by Sessions.
func InteractionFromContext(ctx context.Context) (*Interaction, bool) {
	it, ok := ctx.Value(interactionContextKey).(*Interaction)
	return it, ok
}
