package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"tennisclub/internal/domain/player"
)

// PlayerStore defines the interface for player persistence.
type PlayerStore interface {
	List(ctx context.Context) ([]player.Player, error)
	Create(ctx context.Context, p player.Player) (player.Player, error)
	Update(ctx context.Context, p player.Player) error
}

// PlayerForm carries the roster form fields shared by create and edit.
type PlayerForm struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Email     string
	Phone     string
	Level     string
	AgeGroup  string
	Notes     string
}

func (f PlayerForm) player() player.Player {
	p := player.Player{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		BirthDate: f.BirthDate,
		Email:     f.Email,
		Phone:     f.Phone,
		Level:     f.Level,
		AgeGroup:  f.AgeGroup,
		Notes:     f.Notes,
	}
	p.Normalize()
	return p
}

// RegisterPlayerDeps holds dependencies for RegisterPlayer.
type RegisterPlayerDeps struct {
	PlayerStore PlayerStore
	Now         func() time.Time
}

// ExecuteRegisterPlayer adds a player to the roster.
// PRE: first and last name non-empty; level is one of player.Levels
// POST: player row created with a store-assigned id
func ExecuteRegisterPlayer(ctx context.Context, input PlayerForm, deps RegisterPlayerDeps) (player.Player, error) {
	p := input.player()
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}
	p.CreatedAt = deps.Now()

	created, err := deps.PlayerStore.Create(ctx, p)
	if err != nil {
		return player.Player{}, err
	}

	slog.Info("player_event", "event", "player_registered", "player_id", created.ID, "level", created.Level)
	return created, nil
}

// EditPlayerInput carries the player id and the full form.
type EditPlayerInput struct {
	PlayerID int64
	Form     PlayerForm
}

// EditPlayerDeps holds dependencies for EditPlayer.
type EditPlayerDeps struct {
	PlayerStore PlayerStore
	Now         func() time.Time
}

// ExecuteEditPlayer overwrites every form field of an existing player.
// PRE: PlayerID > 0; form valid as for registration
// POST: player row updated; UpdatedAt set. Last write wins.
func ExecuteEditPlayer(ctx context.Context, input EditPlayerInput, deps EditPlayerDeps) (player.Player, error) {
	p := input.Form.player()
	p.ID = input.PlayerID
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}
	p.UpdatedAt = deps.Now()

	if err := deps.PlayerStore.Update(ctx, p); err != nil {
		return player.Player{}, err
	}

	slog.Info("player_event", "event", "player_updated", "player_id", p.ID)
	return p, nil
}
