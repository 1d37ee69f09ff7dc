package projections

import (
	"context"

	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/tournament"
	"tennisclub/internal/domain/trainingplan"
)

// PlayerStore interface for roster queries.
type PlayerStore interface {
	List(ctx context.Context) ([]player.Player, error)
}

// TournamentStore interface for tournament and registration queries.
type TournamentStore interface {
	List(ctx context.Context) ([]tournament.Tournament, error)
	ListRegistrations(ctx context.Context) ([]tournament.Registration, error)
}

// SessionStore interface for group session queries.
type SessionStore interface {
	List(ctx context.Context) ([]groupsession.Session, error)
}

// PlanStore interface for training plan queries.
type PlanStore interface {
	List(ctx context.Context) ([]trainingplan.Plan, error)
}

// ReportStore interface for report and PSE score queries.
type ReportStore interface {
	List(ctx context.Context) ([]report.Report, error)
	ListScores(ctx context.Context) ([]report.PSEScore, error)
}

// loadErrors collects store failures so a screen can render what did load.
type loadErrors []string

func (l *loadErrors) add(err error) {
	if err != nil {
		*l = append(*l, err.Error())
	}
}
