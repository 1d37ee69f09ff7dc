package player

import (
	"context"

	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/player"
)

// GatewayStore implements Store over the table gateway.
type GatewayStore struct {
	gw *gateway.Gateway
}

// NewGatewayStore creates a new player Store.
func NewGatewayStore(gw *gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List returns every player in store order.
// POST: on failure returns an empty slice and a *gateway.Failure
func (s *GatewayStore) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := s.gw.Select(ctx, gateway.TablePlayers, "loading players")
	players := make([]domain.Player, 0, len(rows))
	for _, r := range rows {
		players = append(players, fromRow(r))
	}
	return players, err
}

// Create inserts a player and returns it with its store-assigned id.
// PRE: value.Validate() == nil
func (s *GatewayStore) Create(ctx context.Context, value domain.Player) (domain.Player, error) {
	row := toRow(value)
	row["created_at"] = gateway.FormatTime(value.CreatedAt)
	created, err := s.gw.InsertOne(ctx, gateway.TablePlayers, row, "registering player")
	if err != nil {
		return domain.Player{}, err
	}
	return fromRow(created), nil
}

// Update overwrites every editable field of the player with value.ID.
// PRE: value.ID > 0; value.Validate() == nil
func (s *GatewayStore) Update(ctx context.Context, value domain.Player) error {
	row := toRow(value)
	row["updated_at"] = gateway.FormatTime(value.UpdatedAt)
	return s.gw.Update(ctx, gateway.TablePlayers, value.ID, row, "updating player")
}

func toRow(p domain.Player) gateway.Row {
	return gateway.Row{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"birth_date": gateway.FormatDate(p.BirthDate),
		"email":      p.Email,
		"phone":      p.Phone,
		"level":      p.Level,
		"age_group":  p.AgeGroup,
		"notes":      p.Notes,
	}
}

func fromRow(r gateway.Row) domain.Player {
	return domain.Player{
		ID:        r.Int64("id"),
		FirstName: r.String("first_name"),
		LastName:  r.String("last_name"),
		BirthDate: r.Date("birth_date"),
		Email:     r.String("email"),
		Phone:     r.String("phone"),
		Level:     r.String("level"),
		AgeGroup:  domain.NormalizeAgeGroup(r.String("age_group")),
		Notes:     r.String("notes"),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
	}
}
