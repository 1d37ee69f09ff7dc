package report

import (
	"time"

	"tennisclub/internal/domain/validation"
)

// Training type constants.
const (
	TypeGroup      = "Group"
	TypeIndividual = "Individual"
)

// Rating bounds and form defaults.
const (
	MinPerformance     = 1
	MaxPerformance     = 5
	DefaultPerformance = 3
	MinPSE             = 1
	MaxPSE             = 10
	DefaultPSE         = 5
)

// Report is a coach's report on one group session or one individual plan.
// INVARIANT: immutable once created
// INVARIANT: Group reports reference SessionID, Individual reports reference TrainingPlanID
type Report struct {
	ID                  int64
	TrainingType        string    `validate:"oneof=Group Individual" label:"training type"`
	SessionID           int64     `validate:"required_if=TrainingType Group" label:"training session"`
	TrainingPlanID      int64     `validate:"required_if=TrainingType Individual" label:"training plan"`
	ReportDate          time.Time `validate:"required" label:"report date"`
	PerformanceRating   int       `validate:"min=1,max=5" label:"performance rating"`
	Attendance          []string  // display names, Group only
	Achievements        string
	AreasForImprovement string
	CoachNotes          string
	CreatedAt           time.Time
}

// Validate checks if the Report has valid data.
// PRE: Report struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Report) Validate() error {
	return validation.Struct(r)
}

// PSEScore is one player's perceived session exertion for a report.
type PSEScore struct {
	ID        int64
	PlayerID  int64 `validate:"required" label:"player"`
	ReportID  int64 `validate:"required" label:"report"`
	Score     int   `validate:"min=1,max=10" label:"PSE score"`
	CreatedAt time.Time
}

// Validate checks if the PSEScore has valid data.
// POST: Returns error if validation fails, nil otherwise
func (s *PSEScore) Validate() error {
	return validation.Struct(s)
}

// ScoresByReport groups scores by report id, preserving store order within each report.
func ScoresByReport(scores []PSEScore) map[int64][]PSEScore {
	out := make(map[int64][]PSEScore)
	for _, s := range scores {
		out[s.ReportID] = append(out[s.ReportID], s)
	}
	return out
}
