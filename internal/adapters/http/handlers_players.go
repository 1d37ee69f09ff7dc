package web

import (
	"fmt"
	"net/http"

	"tennisclub/internal/adapters/http/middleware"
	"tennisclub/internal/application/orchestrators"
	"tennisclub/internal/application/projections"
	playerDomain "tennisclub/internal/domain/player"
)

func playerFormFrom(r *http.Request) orchestrators.PlayerForm {
	return orchestrators.PlayerForm{
		FirstName: formText(r, "first_name"),
		LastName:  formText(r, "last_name"),
		BirthDate: formDate(r, "birth_date"),
		Email:     formText(r, "email"),
		Phone:     formText(r, "phone"),
		Level:     formText(r, "level"),
		AgeGroup:  formText(r, "age_group"),
		Notes:     r.FormValue("notes"),
	}
}

// handlePlayers handles both GET (roster and search) and POST (register) for /players
func handlePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	switch r.Method {
	case http.MethodGet:
		result, err := projections.QueryGetRoster(ctx,
			projections.GetRosterQuery{Search: r.URL.Query().Get("q")},
			projections.GetRosterDeps{PlayerStore: stores.PlayerStore},
		)
		if err != nil {
			internalError(w, err)
			return
		}
		for _, msg := range result.Errors {
			it.AddFlash(middleware.FlashError, msg)
		}

		renderTemplate(w, r, "players.html", map[string]any{
			"Active":    "players",
			"Players":   result.Players,
			"Total":     result.Total,
			"Search":    result.Search,
			"Levels":    playerDomain.Levels,
			"AgeGroups": playerDomain.AgeGroups,
		})

	case http.MethodPost:
		if !parseForm(w, r) {
			return
		}
		created, err := orchestrators.ExecuteRegisterPlayer(ctx, playerFormFrom(r), orchestrators.RegisterPlayerDeps{
			PlayerStore: stores.PlayerStore,
			Now:         timeNow,
		})
		if err != nil {
			it.AddFlash(middleware.FlashError, errorMessage("registering player", err))
		} else {
			it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Player %s registered", created.DisplayName()))
		}
		redirect(w, r, "/players")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handlePlayer handles GET (edit form) and POST (overwrite) for /players/{id}
func handlePlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	switch r.Method {
	case http.MethodGet:
		result, err := projections.QueryGetPlayer(ctx,
			projections.GetPlayerQuery{PlayerID: id},
			projections.GetRosterDeps{PlayerStore: stores.PlayerStore},
		)
		if err != nil {
			internalError(w, err)
			return
		}
		for _, msg := range result.Errors {
			it.AddFlash(middleware.FlashError, msg)
		}

		renderTemplate(w, r, "player_edit.html", map[string]any{
			"Active":    "players",
			"PlayerID":  id,
			"Player":    result.Player,
			"Found":     result.Found,
			"Levels":    playerDomain.Levels,
			"AgeGroups": playerDomain.AgeGroups,
		})

	case http.MethodPost:
		if !parseForm(w, r) {
			return
		}
		updated, err := orchestrators.ExecuteEditPlayer(ctx,
			orchestrators.EditPlayerInput{PlayerID: id, Form: playerFormFrom(r)},
			orchestrators.EditPlayerDeps{PlayerStore: stores.PlayerStore, Now: timeNow},
		)
		if err != nil {
			it.AddFlash(middleware.FlashError, errorMessage("updating player", err))
		} else {
			it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Player %s updated", updated.DisplayName()))
		}
		redirect(w, r, fmt.Sprintf("/players/%d", id))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
