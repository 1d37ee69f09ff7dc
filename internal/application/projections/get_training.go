package projections

import (
	"context"
	"fmt"

	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/trainingplan"
)

// ScoreLine is one PSE score with the player's name resolved.
type ScoreLine struct {
	PlayerID int64
	Name     string
	Score    int
}

// ReportWithScores is a report and its PSE scores.
// ScoreError is set instead of Scores when a score names an unknown player.
type ReportWithScores struct {
	Report     report.Report
	Scores     []ScoreLine
	ScoreError string
}

// SessionWithReports is a group session and the group reports written for it.
type SessionWithReports struct {
	Session groupsession.Session
	Reports []ReportWithScores
}

// PlanRow is a training plan joined to its player.
type PlanRow struct {
	Plan       trainingplan.Plan
	PlayerName string
	HasPlayer  bool
	Reports    []ReportWithScores
}

// GetTrainingResult carries every section of the training screen.
type GetTrainingResult struct {
	Players     []player.Player
	Sessions    []SessionWithReports
	Plans       []PlanRow
	PlanChoices []PlanRow // plans whose player exists
	Errors      []string
}

// GetTrainingDeps holds dependencies for GetTraining.
type GetTrainingDeps struct {
	PlayerStore  PlayerStore
	SessionStore SessionStore
	PlanStore    PlanStore
	ReportStore  ReportStore
}

// QueryGetTraining loads players, sessions, plans, reports and scores and joins them.
// PRE: none
// POST: every section is in store order; load failures are listed in Errors
func QueryGetTraining(ctx context.Context, deps GetTrainingDeps) (GetTrainingResult, error) {
	if err := ctx.Err(); err != nil {
		return GetTrainingResult{}, err
	}
	var errs loadErrors

	players, err := deps.PlayerStore.List(ctx)
	errs.add(err)
	sessions, err := deps.SessionStore.List(ctx)
	errs.add(err)
	plans, err := deps.PlanStore.List(ctx)
	errs.add(err)
	reports, err := deps.ReportStore.List(ctx)
	errs.add(err)
	scores, err := deps.ReportStore.ListScores(ctx)
	errs.add(err)

	scoresByReport := report.ScoresByReport(scores)
	groupReports := make(map[int64][]ReportWithScores)
	planReports := make(map[int64][]ReportWithScores)
	for _, r := range reports {
		rw := withScores(r, scoresByReport[r.ID], players)
		switch r.TrainingType {
		case report.TypeGroup:
			groupReports[r.SessionID] = append(groupReports[r.SessionID], rw)
		case report.TypeIndividual:
			planReports[r.TrainingPlanID] = append(planReports[r.TrainingPlanID], rw)
		}
	}

	result := GetTrainingResult{Players: players}
	for _, s := range sessions {
		result.Sessions = append(result.Sessions, SessionWithReports{Session: s, Reports: groupReports[s.ID]})
	}
	for _, pl := range plans {
		row := PlanRow{Plan: pl, Reports: planReports[pl.ID]}
		if p, err := player.FindByID(players, pl.PlayerID); err == nil {
			row.PlayerName = p.DisplayName()
			row.HasPlayer = true
			result.PlanChoices = append(result.PlanChoices, row)
		} else {
			row.PlayerName = fmt.Sprintf("Unknown player #%d", pl.PlayerID)
		}
		result.Plans = append(result.Plans, row)
	}
	result.Errors = errs
	return result, nil
}

func withScores(r report.Report, scores []report.PSEScore, players []player.Player) ReportWithScores {
	rw := ReportWithScores{Report: r}
	for _, s := range scores {
		p, err := player.FindByID(players, s.PlayerID)
		if err != nil {
			rw.Scores = nil
			rw.ScoreError = fmt.Sprintf("Error loading PSE scores: player %d: %v", s.PlayerID, err)
			return rw
		}
		rw.Scores = append(rw.Scores, ScoreLine{PlayerID: p.ID, Name: p.DisplayName(), Score: s.Score})
	}
	return rw
}
