package trainingplan

import (
	"context"

	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/trainingplan"
)

// Store persists individual training plans.
type Store interface {
	List(ctx context.Context) ([]domain.Plan, error)
	Create(ctx context.Context, value domain.Plan) (domain.Plan, error)
}

// GatewayStore implements Store over the table gateway.
type GatewayStore struct {
	gw *gateway.Gateway
}

// NewGatewayStore creates a new plan Store.
func NewGatewayStore(gw *gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List returns every plan in store order.
func (s *GatewayStore) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := s.gw.Select(ctx, gateway.TableTrainingPlans, "loading training plans")
	out := make([]domain.Plan, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Plan{
			ID:            r.Int64("id"),
			PlayerID:      r.Int64("player_id"),
			StartDate:     r.Date("start_date"),
			EndDate:       r.Date("end_date"),
			FocusArea:     r.String("focus_area"),
			Intensity:     r.Int("intensity"),
			TechnicalGoal: r.String("technical_goal"),
			FitnessGoal:   r.String("fitness_goal"),
			TacticalGoal:  r.String("tactical_goal"),
			Notes:         r.String("notes"),
			CreatedAt:     r.Time("created_at"),
		})
	}
	return out, err
}

// Create inserts a plan.
// PRE: value.Validate() == nil
func (s *GatewayStore) Create(ctx context.Context, value domain.Plan) (domain.Plan, error) {
	created, err := s.gw.InsertOne(ctx, gateway.TableTrainingPlans, gateway.Row{
		"player_id":      value.PlayerID,
		"start_date":     gateway.FormatDate(value.StartDate),
		"end_date":       gateway.FormatDate(value.EndDate),
		"focus_area":     value.FocusArea,
		"intensity":      value.Intensity,
		"technical_goal": value.TechnicalGoal,
		"fitness_goal":   value.FitnessGoal,
		"tactical_goal":  value.TacticalGoal,
		"notes":          value.Notes,
		"created_at":     gateway.FormatTime(value.CreatedAt),
	}, "creating training plan")
	if err != nil {
		return domain.Plan{}, err
	}
	value.ID = created.Int64("id")
	return value, nil
}
