package projections

import (
	"context"
	"fmt"
	"time"

	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/tournament"
)

// GetTournamentsQuery carries the requested calendar month ("YYYY-MM", empty for current).
type GetTournamentsQuery struct {
	Month string
	Now   time.Time
}

// TournamentDetail is one tournament with the players registered for it.
type TournamentDetail struct {
	Tournament tournament.Tournament
	Registered []player.Player // each player once, in roster order
}

// GetTournamentsResult carries the calendar, details and registration choices.
type GetTournamentsResult struct {
	Empty    bool // no tournaments at all: render "No tournaments found" instead of a calendar
	Calendar tournament.Month
	Details  []TournamentDetail
	Players  []player.Player // registration choices
	Errors   []string
}

// GetTournamentsDeps holds dependencies for GetTournaments.
type GetTournamentsDeps struct {
	TournamentStore TournamentStore
	PlayerStore     PlayerStore
}

// QueryGetTournaments builds the tournament screen from fresh reads.
// POST: Details in store order; unknown player ids on registrations are reported in Errors
func QueryGetTournaments(ctx context.Context, query GetTournamentsQuery, deps GetTournamentsDeps) (GetTournamentsResult, error) {
	if err := ctx.Err(); err != nil {
		return GetTournamentsResult{}, err
	}
	var errs loadErrors

	tournaments, err := deps.TournamentStore.List(ctx)
	errs.add(err)
	players, err := deps.PlayerStore.List(ctx)
	errs.add(err)

	result := GetTournamentsResult{Players: players}
	if len(tournaments) == 0 {
		result.Empty = true
		result.Errors = errs
		return result, nil
	}

	registrations, err := deps.TournamentStore.ListRegistrations(ctx)
	errs.add(err)

	// Registration rows may repeat a player; the list shows each player once.
	registered := make(map[int64]map[int64]bool)
	for _, r := range registrations {
		if _, err := player.FindByID(players, r.PlayerID); err != nil {
			errs = append(errs, fmt.Sprintf("Error loading registrations: player %d: %v", r.PlayerID, err))
			continue
		}
		if registered[r.TournamentID] == nil {
			registered[r.TournamentID] = make(map[int64]bool)
		}
		registered[r.TournamentID][r.PlayerID] = true
	}
	byTournament := make(map[int64][]player.Player)
	for _, p := range players {
		for tournamentID, ids := range registered {
			if ids[p.ID] {
				byTournament[tournamentID] = append(byTournament[tournamentID], p)
			}
		}
	}

	result.Calendar = tournament.BuildMonth(tournament.ParseMonth(query.Month, query.Now), tournaments)
	for _, t := range tournaments {
		result.Details = append(result.Details, TournamentDetail{Tournament: t, Registered: byTournament[t.ID]})
	}
	result.Errors = errs
	return result, nil
}
