package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/trainingplan"
)

// SessionStore defines the interface for group session persistence.
type SessionStore interface {
	List(ctx context.Context) ([]groupsession.Session, error)
	Create(ctx context.Context, s groupsession.Session) (groupsession.Session, error)
}

// PlanStore defines the interface for training plan persistence.
type PlanStore interface {
	List(ctx context.Context) ([]trainingplan.Plan, error)
	Create(ctx context.Context, p trainingplan.Plan) (trainingplan.Plan, error)
}

// --- Schedule Group Session ---

// ScheduleSessionInput carries the group session form.
type ScheduleSessionInput struct {
	Date            time.Time
	Time            string // "15:04"
	Level           string
	MaxParticipants int
	Notes           string
}

// ScheduleSessionDeps holds dependencies for ScheduleSession.
type ScheduleSessionDeps struct {
	SessionStore SessionStore
	Now          func() time.Time
}

// ExecuteScheduleSession creates a group training session.
// PRE: date and time set; MaxParticipants >= 1
// POST: session row created
func ExecuteScheduleSession(ctx context.Context, input ScheduleSessionInput, deps ScheduleSessionDeps) (groupsession.Session, error) {
	s := groupsession.Session{
		Date:            input.Date,
		Time:            strings.TrimSpace(input.Time),
		Level:           input.Level,
		MaxParticipants: input.MaxParticipants,
		Notes:           input.Notes,
		CreatedAt:       deps.Now(),
	}
	if err := s.Validate(); err != nil {
		return groupsession.Session{}, err
	}

	created, err := deps.SessionStore.Create(ctx, s)
	if err != nil {
		return groupsession.Session{}, err
	}

	slog.Info("training_event", "event", "session_scheduled", "session_id", created.ID, "level", created.Level)
	return created, nil
}

// --- Create Training Plan ---

// CreatePlanInput carries the individual plan form.
type CreatePlanInput struct {
	PlayerID      int64
	StartDate     time.Time
	DurationWeeks int
	FocusArea     string
	Intensity     int
	TechnicalGoal string
	FitnessGoal   string
	TacticalGoal  string
	Notes         string
}

// CreatePlanDeps holds dependencies for CreatePlan.
type CreatePlanDeps struct {
	PlanStore   PlanStore
	PlayerStore PlayerLister
	Now         func() time.Time
}

// ExecuteCreatePlan creates an individual training plan for an existing player.
// PRE: PlayerID names a loaded player; 1 <= DurationWeeks <= 52; 1 <= Intensity <= 5
// POST: plan row created with EndDate = StartDate + DurationWeeks weeks
func ExecuteCreatePlan(ctx context.Context, input CreatePlanInput, deps CreatePlanDeps) (trainingplan.Plan, error) {
	p, err := lookupPlayer(ctx, deps.PlayerStore, input.PlayerID)
	if err != nil {
		return trainingplan.Plan{}, err
	}

	end, err := trainingplan.EndDateFor(input.StartDate, input.DurationWeeks)
	if err != nil {
		return trainingplan.Plan{}, err
	}

	plan := trainingplan.Plan{
		PlayerID:      p.ID,
		StartDate:     input.StartDate,
		EndDate:       end,
		FocusArea:     input.FocusArea,
		Intensity:     input.Intensity,
		TechnicalGoal: input.TechnicalGoal,
		FitnessGoal:   input.FitnessGoal,
		TacticalGoal:  input.TacticalGoal,
		Notes:         input.Notes,
		CreatedAt:     deps.Now(),
	}
	if err := plan.Validate(); err != nil {
		return trainingplan.Plan{}, err
	}

	created, err := deps.PlanStore.Create(ctx, plan)
	if err != nil {
		return trainingplan.Plan{}, err
	}

	slog.Info("training_event", "event", "plan_created", "plan_id", created.ID, "player_id", p.ID, "weeks", input.DurationWeeks)
	return created, nil
}
