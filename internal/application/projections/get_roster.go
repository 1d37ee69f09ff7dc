package projections

import (
	"context"

	"tennisclub/internal/domain/player"
)

// GetRosterQuery carries the optional search term.
type GetRosterQuery struct {
	Search string
}

// GetRosterResult carries the filtered roster.
type GetRosterResult struct {
	Players []player.Player
	Total   int // roster size before filtering
	Search  string
	Errors  []string
}

// GetRosterDeps holds dependencies for GetRoster.
type GetRosterDeps struct {
	PlayerStore PlayerStore
}

// QueryGetRoster loads every player and keeps those matching the search term.
// POST: Players in store order; a load failure yields no players and one message in Errors
func QueryGetRoster(ctx context.Context, query GetRosterQuery, deps GetRosterDeps) (GetRosterResult, error) {
	if err := ctx.Err(); err != nil {
		return GetRosterResult{}, err
	}
	var errs loadErrors
	players, err := deps.PlayerStore.List(ctx)
	errs.add(err)

	return GetRosterResult{
		Players: player.Filter(players, query.Search),
		Total:   len(players),
		Search:  query.Search,
		Errors:  errs,
	}, nil
}

// GetPlayerQuery selects one player by id.
type GetPlayerQuery struct {
	PlayerID int64
}

// GetPlayerResult carries the selected player.
type GetPlayerResult struct {
	Player player.Player
	Found  bool
	Errors []string
}

// QueryGetPlayer loads the roster and resolves one id.
// POST: Found is false with a message when the id is unknown or the roster failed to load
func QueryGetPlayer(ctx context.Context, query GetPlayerQuery, deps GetRosterDeps) (GetPlayerResult, error) {
	if err := ctx.Err(); err != nil {
		return GetPlayerResult{}, err
	}
	var errs loadErrors
	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		errs.add(err)
		return GetPlayerResult{Errors: errs}, nil
	}
	p, err := player.FindByID(players, query.PlayerID)
	if err != nil {
		errs.add(err)
		return GetPlayerResult{Errors: errs}, nil
	}
	return GetPlayerResult{Player: p, Found: true}, nil
}
