package web

import (
	"fmt"
	"net/http"

	"tennisclub/internal/adapters/http/middleware"
	"tennisclub/internal/application/orchestrators"
	"tennisclub/internal/application/projections"
	tournamentDomain "tennisclub/internal/domain/tournament"
)

// handleTournaments handles GET (calendar, details, registration form) and POST (create) for /tournaments
func handleTournaments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	switch r.Method {
	case http.MethodGet:
		result, err := projections.QueryGetTournaments(ctx,
			projections.GetTournamentsQuery{Month: r.URL.Query().Get("month"), Now: timeNow()},
			projections.GetTournamentsDeps{TournamentStore: stores.TournamentStore, PlayerStore: stores.PlayerStore},
		)
		if err != nil {
			internalError(w, err)
			return
		}
		for _, msg := range result.Errors {
			it.AddFlash(middleware.FlashError, msg)
		}

		renderTemplate(w, r, "tournaments.html", map[string]any{
			"Active":   "tournaments",
			"Empty":    result.Empty,
			"Calendar": result.Calendar,
			"Details":  result.Details,
			"Players":  result.Players,
			"Types":    tournamentDomain.Types,
			"Levels":   tournamentDomain.Levels,
			"Today":    timeNow().Format(dateLayout),
		})

	case http.MethodPost:
		if !parseForm(w, r) {
			return
		}
		created, err := orchestrators.ExecuteCreateTournament(ctx, orchestrators.CreateTournamentInput{
			Name:        formText(r, "name"),
			StartDate:   formDate(r, "start_date"),
			EndDate:     formDate(r, "end_date"),
			Location:    formText(r, "location"),
			Type:        formText(r, "type"),
			Level:       formText(r, "level"),
			Description: r.FormValue("description"),
		}, orchestrators.CreateTournamentDeps{
			TournamentStore: stores.TournamentStore,
			Now:             timeNow,
		})
		if err != nil {
			it.AddFlash(middleware.FlashError, errorMessage("creating tournament", err))
			redirect(w, r, "/tournaments")
			return
		}
		it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Tournament %s created", created.Name))
		redirect(w, r, "/tournaments?month="+created.StartDate.Format(monthLayout))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handlePostRegistrations registers the selected players for a tournament (POST /tournaments/registrations)
// Each player is attempted; failures are reported one by one.
func handlePostRegistrations(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	ctx := r.Context()
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	result, err := orchestrators.ExecuteRegisterPlayers(ctx, orchestrators.RegisterPlayersInput{
		TournamentID: formID(r, "tournament_id"),
		PlayerIDs:    formIDs(r, "player_id"),
	}, orchestrators.RegisterPlayersDeps{
		TournamentStore: stores.TournamentStore,
		PlayerStore:     stores.PlayerStore,
		Sender:          emailSender,
		Now:             timeNow,
	})
	if err != nil {
		it.AddFlash(middleware.FlashError, errorMessage("registering players", err))
		redirect(w, r, "/tournaments")
		return
	}

	for _, f := range result.Failures {
		it.AddFlash(middleware.FlashError, errorMessage("registering player", f))
	}
	if n := len(result.Registered); n > 0 {
		it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Registered %d player(s) for %s", n, result.Tournament.Name))
	}
	redirect(w, r, "/tournaments?month="+result.Tournament.StartDate.Format(monthLayout))
}
