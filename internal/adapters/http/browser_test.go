//go:build browser

package web

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"

	"tennisclub/internal/adapters/email"
)

// browserApp is a live server driven by a headless Chromium.
type browserApp struct {
	BaseURL string
	Stores  *Stores
	Browser playwright.Browser
}

func newBrowserApp(t *testing.T) *browserApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	s := newTestStores(t)
	srv := httptest.NewServer(NewMux(s, Options{
		CSRFKey: bytes.Repeat([]byte{3}, 32),
		Sender:  email.NewNoopSender(),
	}))

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		stores, sessions, emailSender = nil, nil, nil
	})
	return &browserApp{BaseURL: srv.URL, Stores: s, Browser: browser}
}

func (a *browserApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

func (a *browserApp) goTo(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + path); err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
}

func fill(t *testing.T, page playwright.Page, selector, value string) {
	t.Helper()
	if err := page.Locator(selector).Fill(value); err != nil {
		t.Fatalf("fill %s: %v", selector, err)
	}
}

func click(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	if err := page.Locator(selector).Click(); err != nil {
		t.Fatalf("click %s: %v", selector, err)
	}
}

func selectValue(t *testing.T, page playwright.Page, selector, value string) {
	t.Helper()
	if _, err := page.Locator(selector).SelectOption(playwright.SelectOptionValues{Values: &[]string{value}}); err != nil {
		t.Fatalf("select %s=%s: %v", selector, value, err)
	}
}

// waitForText waits until an element matching selector is visible and contains want.
func waitForText(t *testing.T, page playwright.Page, selector, want string) {
	t.Helper()
	loc := page.Locator(selector, playwright.PageLocatorOptions{HasText: want}).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err != nil {
		body, _ := page.Locator("main").TextContent()
		t.Fatalf("%s with %q not visible: %v\npage: %s", selector, want, err, strings.TrimSpace(body))
	}
}

func registerPlayerViaForm(t *testing.T, app *browserApp, page playwright.Page, first, last, level string) {
	t.Helper()
	app.goTo(t, page, "/players")
	fill(t, page, "form[action='/players'] input[name=first_name]", first)
	fill(t, page, "form[action='/players'] input[name=last_name]", last)
	fill(t, page, "form[action='/players'] input[name=email]", strings.ToLower(first)+"@example.com")
	selectValue(t, page, "form[action='/players'] select[name=level]", level)
	click(t, page, "form[action='/players'] button[type=submit]")
	waitForText(t, page, ".flash-success", "Player "+first+" "+last+" registered")
}

func TestBrowser_RegisterAndSearchPlayer(t *testing.T) {
	app := newBrowserApp(t)
	page := app.newPage(t)

	registerPlayerViaForm(t, app, page, "Ana", "Ruiz", "Beginner")
	registerPlayerViaForm(t, app, page, "Ben", "Cole", "Advanced")

	fill(t, page, "#q", "advanced")
	click(t, page, "form.search button[type=submit]")
	waitForText(t, page, "main", "Showing 1 of 2 players")

	count, err := page.Locator("tr[data-player-id]").Count()
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestBrowser_GroupReportWizard(t *testing.T) {
	app := newBrowserApp(t)
	page := app.newPage(t)

	registerPlayerViaForm(t, app, page, "Ana", "Ruiz", "Beginner")

	app.goTo(t, page, "/training?tab=sessions")
	selectValue(t, page, "form[action='/training/sessions'] select[name=level]", "Beginner")
	click(t, page, "form[action='/training/sessions'] button[type=submit]")
	waitForText(t, page, ".flash-success", "Training session")

	app.goTo(t, page, "/training?tab=group-reports")
	if err := page.Locator("form[action='/training/reports/group'] input[name=attendee_id]").First().Check(); err != nil {
		t.Fatalf("check attendee: %v", err)
	}
	click(t, page, "form[action='/training/reports/group'] button[type=submit]")
	waitForText(t, page, ".flash-success", "Enter a PSE score for each attendee")

	players, err := app.Stores.PlayerStore.List(t.Context())
	if err != nil || len(players) != 1 {
		t.Fatalf("players: %v %v", players, err)
	}
	selectValue(t, page, "select[name=pse_"+id(players[0].ID)+"]", "7")
	click(t, page, "form[action='/training/reports/group/scores'] button[type=submit]")
	waitForText(t, page, ".flash-success", "Saved 1 PSE score(s)")
	waitForText(t, page, "table.scores td", "7")
}
