package projections

import (
	"context"
	"errors"

	"tennisclub/internal/adapters/storage/gateway"
	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/tournament"
	"tennisclub/internal/domain/trainingplan"
)

var errUnreachable = &gateway.Failure{Action: "loading players", Cause: errors.New("connection refused")}

type fakePlayers struct {
	players []player.Player
	err     error
}

func (f fakePlayers) List(context.Context) ([]player.Player, error) {
	if f.err != nil {
		return []player.Player{}, f.err
	}
	return f.players, nil
}

type fakeTournaments struct {
	tournaments   []tournament.Tournament
	registrations []tournament.Registration
}

func (f fakeTournaments) List(context.Context) ([]tournament.Tournament, error) {
	return f.tournaments, nil
}

func (f fakeTournaments) ListRegistrations(context.Context) ([]tournament.Registration, error) {
	return f.registrations, nil
}

type fakeSessions []groupsession.Session

func (f fakeSessions) List(context.Context) ([]groupsession.Session, error) { return f, nil }

type fakePlans []trainingplan.Plan

func (f fakePlans) List(context.Context) ([]trainingplan.Plan, error) { return f, nil }

type fakeReports struct {
	reports []report.Report
	scores  []report.PSEScore
}

func (f fakeReports) List(context.Context) ([]report.Report, error) { return f.reports, nil }

func (f fakeReports) ListScores(context.Context) ([]report.PSEScore, error) { return f.scores, nil }

func testRoster() []player.Player {
	return []player.Player{
		{ID: 1, FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Level: player.LevelBeginner, AgeGroup: "U14"},
		{ID: 2, FirstName: "Ben", LastName: "Ng", Phone: "021 555", Level: player.LevelIntermediate, AgeGroup: "Senior"},
		{ID: 3, FirstName: "Cara", LastName: "Lee", Level: player.LevelAdvanced, AgeGroup: "U18"},
	}
}
