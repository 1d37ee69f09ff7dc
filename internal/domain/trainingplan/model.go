package trainingplan

import (
	"errors"
	"time"

	"tennisclub/internal/domain/validation"
)

// Focus area constants.
const (
	FocusTechnique     = "Technique"
	FocusFitness       = "Fitness"
	FocusStrategy      = "Strategy"
	FocusMentalGame    = "Mental Game"
	FocusMatchPractice = "Match Practice"
)

// FocusAreas lists focus areas in the order forms offer them.
var FocusAreas = []string{FocusTechnique, FocusFitness, FocusStrategy, FocusMentalGame, FocusMatchPractice}

// Form defaults and bounds.
const (
	DefaultDurationWeeks = 4
	MinDurationWeeks     = 1
	MaxDurationWeeks     = 52
	DefaultIntensity     = 3
)

// ErrNotFound is returned when a plan id does not match any loaded row.
var ErrNotFound = errors.New("training plan not found")

// Plan is an individual training plan for one player.
// INVARIANT: EndDate = StartDate + duration weeks
type Plan struct {
	ID            int64
	PlayerID      int64     `validate:"required" label:"player"`
	StartDate     time.Time `validate:"required" label:"start date"`
	EndDate       time.Time
	FocusArea     string `validate:"oneof=Technique Fitness Strategy 'Mental Game' 'Match Practice'" label:"focus area"`
	Intensity     int    `validate:"min=1,max=5" label:"training intensity"`
	TechnicalGoal string
	FitnessGoal   string
	TacticalGoal  string
	Notes         string
	CreatedAt     time.Time
}

// Validate checks if the Plan has valid data.
// PRE: Plan struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (p *Plan) Validate() error {
	return validation.Struct(p)
}

// EndDateFor returns start plus the given number of weeks.
// PRE: MinDurationWeeks <= weeks <= MaxDurationWeeks
func EndDateFor(start time.Time, weeks int) (time.Time, error) {
	if weeks < MinDurationWeeks {
		return time.Time{}, &validation.FieldError{Field: "duration (weeks)", Rule: "min", Param: "1"}
	}
	if weeks > MaxDurationWeeks {
		return time.Time{}, &validation.FieldError{Field: "duration (weeks)", Rule: "max", Param: "52"}
	}
	return start.AddDate(0, 0, 7*weeks), nil
}

// FindByID returns the first plan with the given id.
func FindByID(plans []Plan, id int64) (Plan, error) {
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrNotFound
}
