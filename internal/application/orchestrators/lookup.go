package orchestrators

import (
	"context"
	"fmt"

	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/wizard"
)

// lookupPlayer loads the roster and resolves one id against it.
func lookupPlayer(ctx context.Context, store PlayerLister, id int64) (player.Player, error) {
	players, err := store.List(ctx)
	if err != nil {
		return player.Player{}, err
	}
	p, err := player.FindByID(players, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("player %d: %w", id, err)
	}
	return p, nil
}

// resolveAttendees maps selected ids to players in selection order, dropping repeats.
// Any unknown id fails the whole resolution.
func resolveAttendees(players []player.Player, ids []int64) ([]wizard.Attendee, error) {
	seen := make(map[int64]bool, len(ids))
	out := make([]wizard.Attendee, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, err := player.FindByID(players, id)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", id, err)
		}
		out = append(out, wizard.Attendee{PlayerID: p.ID, Name: p.DisplayName()})
	}
	return out, nil
}
