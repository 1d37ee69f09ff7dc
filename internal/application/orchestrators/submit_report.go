package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/trainingplan"
	"tennisclub/internal/domain/wizard"
)

// ReportStore defines the interface for report and PSE score persistence.
type ReportStore interface {
	Create(ctx context.Context, r report.Report) (report.Report, error)
	CreateScores(ctx context.Context, scores []report.PSEScore) ([]report.PSEScore, error)
}

// SessionLister is the read side of SessionStore.
type SessionLister interface {
	List(ctx context.Context) ([]groupsession.Session, error)
}

// PlanLister is the read side of PlanStore.
type PlanLister interface {
	List(ctx context.Context) ([]trainingplan.Plan, error)
}

// ReportForm carries the fields shared by group and individual report forms.
type ReportForm struct {
	ReportDate          time.Time
	PerformanceRating   int
	Achievements        string
	AreasForImprovement string
	CoachNotes          string
}

func (f ReportForm) report(kind string, now time.Time) report.Report {
	return report.Report{
		TrainingType:        kind,
		ReportDate:          f.ReportDate,
		PerformanceRating:   f.PerformanceRating,
		Achievements:        f.Achievements,
		AreasForImprovement: f.AreasForImprovement,
		CoachNotes:          f.CoachNotes,
		CreatedAt:           now,
	}
}

// --- Submit Group Report (phase one) ---

// SubmitGroupReportInput carries the group report form and the interaction's wizard.
type SubmitGroupReportInput struct {
	Wizard      *wizard.Wizard
	SessionID   int64
	AttendeeIDs []int64
	Form        ReportForm
}

// SubmitGroupReportDeps holds dependencies for SubmitGroupReport.
type SubmitGroupReportDeps struct {
	ReportStore  ReportStore
	SessionStore SessionLister
	PlayerStore  PlayerLister
	Now          func() time.Time
}

// ExecuteSubmitGroupReport saves a group report and, when anyone attended, moves the wizard to scoring.
// Attendees are resolved by id against a fresh roster; an unknown id aborts before anything is written.
// PRE: wizard is a Group wizard in Collecting; SessionID names a loaded session
// POST: report saved with attendee display names; wizard AwaitingScores iff attendance non-empty
func ExecuteSubmitGroupReport(ctx context.Context, input SubmitGroupReportInput, deps SubmitGroupReportDeps) (report.Report, error) {
	w := input.Wizard
	if w == nil || w.Kind() != report.TypeGroup {
		return report.Report{}, fmt.Errorf("%w: group report needs a group wizard", wizard.ErrUnknownKind)
	}
	if w.Phase() != wizard.Collecting {
		return report.Report{}, wizard.ErrNotCollecting
	}

	sessions, err := deps.SessionStore.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	session, err := groupsession.FindByID(sessions, input.SessionID)
	if err != nil {
		return report.Report{}, fmt.Errorf("session %d: %w", input.SessionID, err)
	}

	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	attendees, err := resolveAttendees(players, input.AttendeeIDs)
	if err != nil {
		return report.Report{}, err
	}

	r := input.Form.report(report.TypeGroup, deps.Now())
	r.SessionID = session.ID
	r.Attendance = make([]string, len(attendees))
	for i, a := range attendees {
		r.Attendance[i] = a.Name
	}
	if err := r.Validate(); err != nil {
		return report.Report{}, err
	}

	created, err := deps.ReportStore.Create(ctx, r)
	if err != nil {
		return report.Report{}, err
	}

	if len(attendees) == 0 {
		slog.Info("wizard_event", "event", "report_saved_without_attendees", "kind", report.TypeGroup, "report_id", created.ID)
		return created, nil
	}
	if err := w.Advance(created.ID, attendees); err != nil {
		return created, err
	}

	slog.Info("wizard_event", "event", "awaiting_scores", "kind", report.TypeGroup, "report_id", created.ID, "attendees", len(attendees))
	return created, nil
}

// --- Submit Individual Report (phase one) ---

// SubmitIndividualReportInput carries the individual report form and the interaction's wizard.
type SubmitIndividualReportInput struct {
	Wizard *wizard.Wizard
	PlanID int64
	Form   ReportForm
}

// SubmitIndividualReportDeps holds dependencies for SubmitIndividualReport.
type SubmitIndividualReportDeps struct {
	ReportStore ReportStore
	PlanStore   PlanLister
	PlayerStore PlayerLister
	Now         func() time.Time
}

// ExecuteSubmitIndividualReport saves an individual report and moves the wizard to scoring the plan's player.
// PRE: wizard is an Individual wizard in Collecting; PlanID names a plan whose player exists
// POST: report saved; wizard AwaitingScores carrying exactly that player
func ExecuteSubmitIndividualReport(ctx context.Context, input SubmitIndividualReportInput, deps SubmitIndividualReportDeps) (report.Report, error) {
	w := input.Wizard
	if w == nil || w.Kind() != report.TypeIndividual {
		return report.Report{}, fmt.Errorf("%w: individual report needs an individual wizard", wizard.ErrUnknownKind)
	}
	if w.Phase() != wizard.Collecting {
		return report.Report{}, wizard.ErrNotCollecting
	}

	plans, err := deps.PlanStore.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	plan, err := trainingplan.FindByID(plans, input.PlanID)
	if err != nil {
		return report.Report{}, fmt.Errorf("plan %d: %w", input.PlanID, err)
	}
	p, err := lookupPlayer(ctx, deps.PlayerStore, plan.PlayerID)
	if err != nil {
		return report.Report{}, err
	}

	r := input.Form.report(report.TypeIndividual, deps.Now())
	r.TrainingPlanID = plan.ID
	if err := r.Validate(); err != nil {
		return report.Report{}, err
	}

	created, err := deps.ReportStore.Create(ctx, r)
	if err != nil {
		return report.Report{}, err
	}
	if err := w.Advance(created.ID, []wizard.Attendee{{PlayerID: p.ID, Name: p.DisplayName()}}); err != nil {
		return created, err
	}

	slog.Info("wizard_event", "event", "awaiting_scores", "kind", report.TypeIndividual, "report_id", created.ID, "player_id", p.ID)
	return created, nil
}

// --- Submit PSE Scores (phase two) ---

// SubmitScoresInput carries the scores keyed by player id.
type SubmitScoresInput struct {
	Wizard *wizard.Wizard
	Scores map[int64]int
}

// SubmitScoresDeps holds dependencies for SubmitScores.
type SubmitScoresDeps struct {
	ReportStore ReportStore
	Now         func() time.Time
}

// ExecuteSubmitScores writes one PSE score per carried attendee in a single batch and completes the wizard.
// PRE: wizard AwaitingScores; a score in 1..10 for every carried attendee
// POST: on success all scores saved and wizard Collecting; on failure wizard unchanged
func ExecuteSubmitScores(ctx context.Context, input SubmitScoresInput, deps SubmitScoresDeps) ([]report.PSEScore, error) {
	w := input.Wizard
	if w == nil {
		return nil, wizard.ErrNotAwaitingScores
	}
	rows, err := w.BuildScores(input.Scores, deps.Now())
	if err != nil {
		return nil, err
	}

	created, err := deps.ReportStore.CreateScores(ctx, rows)
	if err != nil {
		return nil, err
	}
	if err := w.Complete(); err != nil {
		return created, err
	}

	slog.Info("wizard_event", "event", "scores_saved", "kind", w.Kind(), "report_id", rows[0].ReportID, "scores", len(rows))
	return created, nil
}

// --- Cancel Group Report ---

// ExecuteCancelGroupReport drops the pending scores. The saved report is kept without scores.
// PRE: Group wizard AwaitingScores
// POST: wizard Collecting
func ExecuteCancelGroupReport(w *wizard.Wizard) error {
	if w == nil {
		return wizard.ErrNotAwaitingScores
	}
	pending, _ := w.Pending()
	if err := w.Cancel(); err != nil {
		return err
	}
	slog.Info("wizard_event", "event", "scoring_cancelled", "kind", w.Kind(), "report_id", pending.ReportID)
	return nil
}
