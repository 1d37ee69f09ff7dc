package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"tennisclub/internal/adapters/email"
)

var csrfFieldPattern = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func newTestServer(t *testing.T) (http.Handler, *Stores) {
	t.Helper()
	s := newTestStores(t)
	h := NewMux(s, Options{
		CSRFKey:  bytes.Repeat([]byte{7}, 32),
		Sender:   email.NewNoopSender(),
		Registry: prometheus.NewRegistry(),
	})
	t.Cleanup(func() { stores, sessions, emailSender = nil, nil, nil })
	return h, s
}

func TestNewMux_HealthzAndHeaders(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request id missing")
	}
}

func TestNewMux_MetricsExposed(t *testing.T) {
	h, _ := newTestServer(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tennisclub_http_requests_total") {
		t.Error("request counter not exported")
	}
}

func TestNewMux_StaticAssets(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/static/style.css", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".topnav") {
		t.Errorf("style.css: status %d", rec.Code)
	}
}

func TestNewMux_RejectsPostWithoutCSRFToken(t *testing.T) {
	h, s := newTestServer(t)
	form := url.Values{"first_name": {"Ana"}, "last_name": {"Ruiz"}, "level": {"Beginner"}}
	req := httptest.NewRequest("POST", "/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
	players, _ := s.PlayerStore.List(context.Background())
	if len(players) != 0 {
		t.Error("rejected post must not create a player")
	}
}

func TestNewMux_FormPostWithToken(t *testing.T) {
	h, s := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/players", nil))
	m := csrfFieldPattern.FindStringSubmatch(rec.Body.String())
	if m == nil {
		t.Fatal("players page has no CSRF field")
	}
	cookies := rec.Result().Cookies()

	form := url.Values{
		"gorilla.csrf.Token": {m[1]},
		"first_name":         {"Ana"},
		"last_name":          {"Ruiz"},
		"level":              {"Beginner"},
	}
	req := httptest.NewRequest("POST", "/players", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303. Body: %s", rec.Code, rec.Body.String())
	}
	players, _ := s.PlayerStore.List(context.Background())
	if len(players) != 1 {
		t.Fatalf("players = %d, want 1", len(players))
	}

	// The same browser sees the flash on the next page.
	req = httptest.NewRequest("GET", "/players", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "Player Ana Ruiz registered") {
		t.Error("flash should follow the session cookie")
	}
}

func TestNewMux_CookielessTrafficKeepsNoSessions(t *testing.T) {
	h, _ := newTestServer(t)

	for i := 0; i < 1000; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))
	}
	for i := 0; i < 500; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/static/style.css", nil))
	}
	for _, path := range []string{"/metrics", "/wp-login.php", "/foo/bar"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if len(rec.Result().Cookies()) != 0 {
			t.Errorf("%s set cookies %v", path, rec.Result().Cookies())
		}
	}
	if n := sessions.Len(); n != 0 {
		t.Fatalf("sessions after cookieless traffic = %d, want 0", n)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/players", nil))
	if rec.Code != http.StatusOK || sessions.Len() != 1 {
		t.Errorf("screen request: status %d, sessions %d, want 200 and 1", rec.Code, sessions.Len())
	}
}

func TestNewMux_UnknownPathIsNotFound(t *testing.T) {
	h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/wp-login.php", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("security headers missing on 404")
	}
}
