package groupsession

import (
	"context"

	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/groupsession"
)

// Store persists group training sessions.
type Store interface {
	List(ctx context.Context) ([]domain.Session, error)
	Create(ctx context.Context, value domain.Session) (domain.Session, error)
}

// GatewayStore implements Store over the table gateway.
type GatewayStore struct {
	gw *gateway.Gateway
}

// NewGatewayStore creates a new session Store.
func NewGatewayStore(gw *gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List returns every session in store order.
func (s *GatewayStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.gw.Select(ctx, gateway.TableGroupTrainingSessions, "loading training sessions")
	out := make([]domain.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Session{
			ID:              r.Int64("id"),
			Date:            r.Date("date"),
			Time:            r.String("time"),
			Level:           r.String("level"),
			MaxParticipants: r.Int("max_participants"),
			Notes:           r.String("notes"),
			CreatedAt:       r.Time("created_at"),
		})
	}
	return out, err
}

// Create inserts a session.
// PRE: value.Validate() == nil
func (s *GatewayStore) Create(ctx context.Context, value domain.Session) (domain.Session, error) {
	created, err := s.gw.InsertOne(ctx, gateway.TableGroupTrainingSessions, gateway.Row{
		"date":             gateway.FormatDate(value.Date),
		"time":             value.Time,
		"level":            value.Level,
		"max_participants": value.MaxParticipants,
		"notes":            value.Notes,
		"created_at":       gateway.FormatTime(value.CreatedAt),
	}, "scheduling training session")
	if err != nil {
		return domain.Session{}, err
	}
	value.ID = created.Int64("id")
	return value, nil
}
