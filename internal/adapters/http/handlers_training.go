package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"tennisclub/internal/adapters/http/middleware"
	"tennisclub/internal/application/orchestrators"
	"tennisclub/internal/application/projections"
	"tennisclub/internal/domain/groupsession"
	playerDomain "tennisclub/internal/domain/player"
	reportDomain "tennisclub/internal/domain/report"
	"tennisclub/internal/domain/trainingplan"
	"tennisclub/internal/domain/wizard"
)

// Training screen tabs.
const (
	tabSessions          = "sessions"
	tabPlans             = "plans"
	tabGroupReports      = "group-reports"
	tabIndividualReports = "individual-reports"
)

var trainingTabs = []struct{ ID, Title string }{
	{tabSessions, "Group Sessions"},
	{tabPlans, "Individual Plans"},
	{tabGroupReports, "Group Reports"},
	{tabIndividualReports, "Individual Reports"},
}

func trainingURL(tab string) string {
	return "/training?tab=" + tab
}

func validTab(tab string) string {
	for _, t := range trainingTabs {
		if t.ID == tab {
			return tab
		}
	}
	return tabSessions
}

// claimSubmit guards a collecting-phase form against double submission.
// A refused submission is dropped without touching the store.
func claimSubmit(w http.ResponseWriter, r *http.Request, it *middleware.Interaction, tab string) bool {
	if it.ClaimSubmit() {
		return true
	}
	slog.Info("wizard_event", "event", "duplicate_submit_ignored", "path", r.URL.Path)
	redirect(w, r, trainingURL(tab))
	return false
}

func reportFormFrom(r *http.Request) orchestrators.ReportForm {
	return orchestrators.ReportForm{
		ReportDate:          formDate(r, "report_date"),
		PerformanceRating:   formInt(r, "performance_rating", reportDomain.DefaultPerformance),
		Achievements:        r.FormValue("achievements"),
		AreasForImprovement: r.FormValue("areas_for_improvement"),
		CoachNotes:          r.FormValue("coach_notes"),
	}
}

// scoresFrom reads one "pse_<player id>" field per carried attendee.
// Missing or malformed fields are left out so the wizard reports them.
func scoresFrom(r *http.Request, w *wizard.Wizard) map[int64]int {
	scores := make(map[int64]int)
	pending, ok := w.Pending()
	if !ok {
		return scores
	}
	for _, a := range pending.Attendees {
		v := formText(r, "pse_"+strconv.FormatInt(a.PlayerID, 10))
		if n, err := strconv.Atoi(v); err == nil {
			scores[a.PlayerID] = n
		}
	}
	return scores
}

// handleTraining renders the four training sections (GET /training)
func handleTraining(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	result, err := projections.QueryGetTraining(ctx, projections.GetTrainingDeps{
		PlayerStore:  stores.PlayerStore,
		SessionStore: stores.SessionStore,
		PlanStore:    stores.PlanStore,
		ReportStore:  stores.ReportStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	for _, msg := range result.Errors {
		it.AddFlash(middleware.FlashError, msg)
	}

	groupPending, groupAwaiting := it.GroupWizard().Pending()
	individualPending, individualAwaiting := it.IndividualWizard().Pending()

	renderTemplate(w, r, "training.html", map[string]any{
		"Active":             "training",
		"Tab":                validTab(r.URL.Query().Get("tab")),
		"Tabs":               trainingTabs,
		"Today":              timeNow().Format(dateLayout),
		"Players":            result.Players,
		"Sessions":           result.Sessions,
		"Plans":              result.Plans,
		"PlanChoices":        result.PlanChoices,
		"GroupAwaiting":      groupAwaiting,
		"GroupPending":       groupPending,
		"IndividualAwaiting": individualAwaiting,
		"IndividualPending":  individualPending,
		"Levels":             playerDomain.Levels,
		"FocusAreas":         trainingplan.FocusAreas,
		"DefaultMax":         groupsession.DefaultMaxParticipants,
		"DefaultWeeks":       trainingplan.DefaultDurationWeeks,
		"MinWeeks":           trainingplan.MinDurationWeeks,
		"MaxWeeks":           trainingplan.MaxDurationWeeks,
		"DefaultIntensity":   trainingplan.DefaultIntensity,
		"DefaultPerformance": reportDomain.DefaultPerformance,
		"MinPerformance":     reportDomain.MinPerformance,
		"MaxPerformance":     reportDomain.MaxPerformance,
		"DefaultPSE":         reportDomain.DefaultPSE,
		"MinPSE":             reportDomain.MinPSE,
		"MaxPSE":             reportDomain.MaxPSE,
	})
}

// handlePostSession schedules a group session (POST /training/sessions)
func handlePostSession(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()
	if !claimSubmit(w, r, it, tabSessions) {
		return
	}

	created, err := orchestrators.ExecuteScheduleSession(r.Context(), orchestrators.ScheduleSessionInput{
		Date:            formDate(r, "date"),
		Time:            formText(r, "time"),
		Level:           formText(r, "level"),
		MaxParticipants: formInt(r, "max_participants", groupsession.DefaultMaxParticipants),
		Notes:           r.FormValue("notes"),
	}, orchestrators.ScheduleSessionDeps{SessionStore: stores.SessionStore, Now: timeNow})
	if err != nil {
		it.AddFlash(middleware.FlashError, errorMessage("scheduling training session", err))
	} else {
		it.AddFlash(middleware.FlashSuccess, "Training session scheduled: "+created.Label())
	}
	redirect(w, r, trainingURL(tabSessions))
}

// handlePostPlan creates an individual training plan (POST /training/plans)
func handlePostPlan(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()
	if !claimSubmit(w, r, it, tabPlans) {
		return
	}

	created, err := orchestrators.ExecuteCreatePlan(r.Context(), orchestrators.CreatePlanInput{
		PlayerID:      formID(r, "player_id"),
		StartDate:     formDate(r, "start_date"),
		DurationWeeks: formInt(r, "duration_weeks", trainingplan.DefaultDurationWeeks),
		FocusArea:     formText(r, "focus_area"),
		Intensity:     formInt(r, "intensity", trainingplan.DefaultIntensity),
		TechnicalGoal: formText(r, "technical_goal"),
		FitnessGoal:   formText(r, "fitness_goal"),
		TacticalGoal:  formText(r, "tactical_goal"),
		Notes:         r.FormValue("notes"),
	}, orchestrators.CreatePlanDeps{
		PlanStore:   stores.PlanStore,
		PlayerStore: stores.PlayerStore,
		Now:         timeNow,
	})
	if err != nil {
		it.AddFlash(middleware.FlashError, errorMessage("creating training plan", err))
	} else {
		it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Training plan created until %s", created.EndDate.Format(dateLayout)))
	}
	redirect(w, r, trainingURL(tabPlans))
}

// handlePostGroupReport saves a group report, phase one of the wizard (POST /training/reports/group)
func handlePostGroupReport(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()
	if !claimSubmit(w, r, it, tabGroupReports) {
		return
	}

	wz := it.GroupWizard()
	created, err := orchestrators.ExecuteSubmitGroupReport(r.Context(), orchestrators.SubmitGroupReportInput{
		Wizard:      wz,
		SessionID:   formID(r, "session_id"),
		AttendeeIDs: formIDs(r, "attendee_id"),
		Form:        reportFormFrom(r),
	}, orchestrators.SubmitGroupReportDeps{
		ReportStore:  stores.ReportStore,
		SessionStore: stores.SessionStore,
		PlayerStore:  stores.PlayerStore,
		Now:          timeNow,
	})
	switch {
	case err != nil:
		it.AddFlash(middleware.FlashError, errorMessage("saving training report", err))
	case wz.Phase() == wizard.AwaitingScores:
		it.AddFlash(middleware.FlashSuccess, "Training report saved. Enter a PSE score for each attendee.")
	default:
		it.AddFlash(middleware.FlashInfo, fmt.Sprintf("Training report %d saved with no attendees to score.", created.ID))
	}
	redirect(w, r, trainingURL(tabGroupReports))
}

// handlePostGroupScores saves the group report's PSE scores, phase two (POST /training/reports/group/scores)
func handlePostGroupScores(w http.ResponseWriter, r *http.Request) {
	submitScores(w, r, func(it *middleware.Interaction) *wizard.Wizard { return it.GroupWizard() }, tabGroupReports)
}

// handlePostIndividualScores saves the individual report's PSE score (POST /training/reports/individual/scores)
func handlePostIndividualScores(w http.ResponseWriter, r *http.Request) {
	submitScores(w, r, func(it *middleware.Interaction) *wizard.Wizard { return it.IndividualWizard() }, tabIndividualReports)
}

func submitScores(w http.ResponseWriter, r *http.Request, pick func(*middleware.Interaction) *wizard.Wizard, tab string) {
	if !parseForm(w, r) {
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	wz := pick(it)
	if wz.Phase() != wizard.AwaitingScores {
		// A repeated scores submit after the first one completed.
		slog.Info("wizard_event", "event", "duplicate_submit_ignored", "path", r.URL.Path)
		redirect(w, r, trainingURL(tab))
		return
	}

	saved, err := orchestrators.ExecuteSubmitScores(r.Context(), orchestrators.SubmitScoresInput{
		Wizard: wz,
		Scores: scoresFrom(r, wz),
	}, orchestrators.SubmitScoresDeps{ReportStore: stores.ReportStore, Now: timeNow})
	if err != nil {
		it.AddFlash(middleware.FlashError, errorMessage("saving PSE scores", err))
	} else {
		it.AddFlash(middleware.FlashSuccess, fmt.Sprintf("Saved %d PSE score(s)", len(saved)))
	}
	redirect(w, r, trainingURL(tab))
}

// handlePostGroupCancel abandons scoring; the saved report keeps no scores (POST /training/reports/group/cancel)
func handlePostGroupCancel(w http.ResponseWriter, r *http.Request) {
	it := interaction(r)
	it.Lock()
	defer it.Unlock()

	if err := orchestrators.ExecuteCancelGroupReport(it.GroupWizard()); err != nil {
		if !errors.Is(err, wizard.ErrNotAwaitingScores) {
			it.AddFlash(middleware.FlashError, errorMessage("cancelling PSE scores", err))
		}
	} else {
		it.AddFlash(middleware.FlashInfo, "PSE scoring cancelled. The report was kept without scores.")
	}
	redirect(w, r, trainingURL(tabGroupReports))
}

// handlePostIndividualReport saves an individual report, phase one of the wizard (POST /training/reports/individual)
func handlePostIndividualReport(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	it := interaction(r)
	it.Lock()
	defer it.Unlock()
	if !claimSubmit(w, r, it, tabIndividualReports) {
		return
	}

	_, err := orchestrators.ExecuteSubmitIndividualReport(r.Context(), orchestrators.SubmitIndividualReportInput{
		Wizard: it.IndividualWizard(),
		PlanID: formID(r, "plan_id"),
		Form:   reportFormFrom(r),
	}, orchestrators.SubmitIndividualReportDeps{
		ReportStore: stores.ReportStore,
		PlanStore:   stores.PlanStore,
		PlayerStore: stores.PlayerStore,
		Now:         timeNow,
	})
	if err != nil {
		it.AddFlash(middleware.FlashError, errorMessage("saving training report", err))
	} else {
		it.AddFlash(middleware.FlashSuccess, "Training report saved. Enter the player's PSE score.")
	}
	redirect(w, r, trainingURL(tabIndividualReports))
}
