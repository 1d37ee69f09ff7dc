package report

import (
	"context"

	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/report"
)

// GatewayStore implements Store over the table gateway.
type GatewayStore struct {
	gw *gateway.Gateway
}

// NewGatewayStore creates a new report Store.
func NewGatewayStore(gw *gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List returns every report in store order.
func (s *GatewayStore) List(ctx context.Context) ([]domain.Report, error) {
	rows, err := s.gw.Select(ctx, gateway.TableTrainingReports, "loading training reports")
	out := make([]domain.Report, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Report{
			ID:                  r.Int64("id"),
			TrainingType:        r.String("training_type"),
			SessionID:           r.Int64("session_id"),
			TrainingPlanID:      r.Int64("training_plan_id"),
			ReportDate:          r.Date("report_date"),
			PerformanceRating:   r.Int("performance_rating"),
			Attendance:          r.Strings("attendance"),
			Achievements:        r.String("achievements"),
			AreasForImprovement: r.String("areas_for_improvement"),
			CoachNotes:          r.String("coach_notes"),
			CreatedAt:           r.Time("created_at"),
		})
	}
	return out, err
}

// Create inserts a report. Only the reference matching TrainingType is written.
// PRE: value.Validate() == nil
func (s *GatewayStore) Create(ctx context.Context, value domain.Report) (domain.Report, error) {
	row := gateway.Row{
		"training_type":         value.TrainingType,
		"report_date":           gateway.FormatDate(value.ReportDate),
		"performance_rating":    value.PerformanceRating,
		"achievements":          value.Achievements,
		"areas_for_improvement": value.AreasForImprovement,
		"coach_notes":           value.CoachNotes,
		"created_at":            gateway.FormatTime(value.CreatedAt),
	}
	if value.TrainingType == domain.TypeGroup {
		row["session_id"] = value.SessionID
		attendance := value.Attendance
		if attendance == nil {
			attendance = []string{}
		}
		row["attendance"] = attendance
	} else {
		row["training_plan_id"] = value.TrainingPlanID
	}

	created, err := s.gw.InsertOne(ctx, gateway.TableTrainingReports, row, "saving training report")
	if err != nil {
		return domain.Report{}, err
	}
	value.ID = created.Int64("id")
	return value, nil
}

// ListScores returns every PSE score in store order.
func (s *GatewayStore) ListScores(ctx context.Context) ([]domain.PSEScore, error) {
	rows, err := s.gw.Select(ctx, gateway.TablePlayerPSEScores, "loading PSE scores")
	out := make([]domain.PSEScore, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.PSEScore{
			ID:        r.Int64("id"),
			PlayerID:  r.Int64("player_id"),
			ReportID:  r.Int64("report_id"),
			Score:     r.Int("pse_score"),
			CreatedAt: r.Time("created_at"),
		})
	}
	return out, err
}

// CreateScores inserts every score in a single batch call.
// PRE: len(scores) > 0; each score validated
func (s *GatewayStore) CreateScores(ctx context.Context, scores []domain.PSEScore) ([]domain.PSEScore, error) {
	rows := make([]gateway.Row, len(scores))
	for i, sc := range scores {
		rows[i] = gateway.Row{
			"player_id":  sc.PlayerID,
			"report_id":  sc.ReportID,
			"pse_score":  sc.Score,
			"created_at": gateway.FormatTime(sc.CreatedAt),
		}
	}
	created, err := s.gw.Insert(ctx, gateway.TablePlayerPSEScores, rows, "saving PSE scores")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PSEScore, len(scores))
	copy(out, scores)
	for i := range out {
		if i < len(created) {
			out[i].ID = created[i].Int64("id")
		}
	}
	return out, nil
}
