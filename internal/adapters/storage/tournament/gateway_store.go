package tournament

import (
	"context"

	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/tournament"
)

// GatewayStore implements Store over the table gateway.
type GatewayStore struct {
	gw *gateway.Gateway
}

// NewGatewayStore creates a new tournament Store.
func NewGatewayStore(gw *gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List returns every tournament in store order.
func (s *GatewayStore) List(ctx context.Context) ([]domain.Tournament, error) {
	rows, err := s.gw.Select(ctx, gateway.TableTournaments, "loading tournaments")
	out := make([]domain.Tournament, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Tournament{
			ID:          r.Int64("id"),
			Name:        r.String("name"),
			StartDate:   r.Date("start_date"),
			EndDate:     r.Date("end_date"),
			Location:    r.String("location"),
			Type:        r.String("type"),
			Level:       r.String("level"),
			Description: r.String("description"),
			CreatedAt:   r.Time("created_at"),
		})
	}
	return out, err
}

// Create inserts a tournament.
// PRE: value.Validate() == nil
func (s *GatewayStore) Create(ctx context.Context, value domain.Tournament) (domain.Tournament, error) {
	created, err := s.gw.InsertOne(ctx, gateway.TableTournaments, gateway.Row{
		"name":        value.Name,
		"start_date":  gateway.FormatDate(value.StartDate),
		"end_date":    gateway.FormatDate(value.EndDate),
		"location":    value.Location,
		"type":        value.Type,
		"level":       value.Level,
		"description": value.Description,
		"created_at":  gateway.FormatTime(value.CreatedAt),
	}, "creating tournament")
	if err != nil {
		return domain.Tournament{}, err
	}
	value.ID = created.Int64("id")
	return value, nil
}

// ListRegistrations returns every registration in store order.
func (s *GatewayStore) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	rows, err := s.gw.Select(ctx, gateway.TableTournamentRegistrations, "loading registrations")
	out := make([]domain.Registration, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Registration{
			ID:               r.Int64("id"),
			TournamentID:     r.Int64("tournament_id"),
			PlayerID:         r.Int64("player_id"),
			RegistrationDate: r.Time("registration_date"),
		})
	}
	return out, err
}

// Register inserts one registration. Duplicates are not checked.
// PRE: value.Validate() == nil
func (s *GatewayStore) Register(ctx context.Context, value domain.Registration) (domain.Registration, error) {
	created, err := s.gw.InsertOne(ctx, gateway.TableTournamentRegistrations, gateway.Row{
		"tournament_id":     value.TournamentID,
		"player_id":         value.PlayerID,
		"registration_date": gateway.FormatTime(value.RegistrationDate),
	}, "registering player")
	if err != nil {
		return domain.Registration{}, err
	}
	value.ID = created.Int64("id")
	return value, nil
}
