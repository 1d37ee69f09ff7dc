package orchestrators

import (
	"context"
	"errors"
	"time"

	"tennisclub/internal/adapters/email"
	"tennisclub/internal/domain/groupsession"
	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/tournament"
	"tennisclub/internal/domain/trainingplan"
)

var fixedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

var errStoreDown = errors.New("store unavailable")

// mockPlayerStore implements PlayerStore for testing.
type mockPlayerStore struct {
	players   []player.Player
	listErr   error
	updateErr error
	updated   []player.Player
}

func (m *mockPlayerStore) List(_ context.Context) ([]player.Player, error) {
	if m.listErr != nil {
		return []player.Player{}, m.listErr
	}
	return append([]player.Player(nil), m.players...), nil
}

func (m *mockPlayerStore) Create(_ context.Context, p player.Player) (player.Player, error) {
	p.ID = int64(len(m.players) + 1)
	m.players = append(m.players, p)
	return p, nil
}

func (m *mockPlayerStore) Update(_ context.Context, p player.Player) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, p)
	return nil
}

// mockTournamentStore implements TournamentStore for testing.
type mockTournamentStore struct {
	tournaments   []tournament.Tournament
	registrations []tournament.Registration
	failPlayer    int64 // Register fails for this player id
}

func (m *mockTournamentStore) List(_ context.Context) ([]tournament.Tournament, error) {
	return m.tournaments, nil
}

func (m *mockTournamentStore) Create(_ context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	t.ID = int64(len(m.tournaments) + 1)
	m.tournaments = append(m.tournaments, t)
	return t, nil
}

func (m *mockTournamentStore) Register(_ context.Context, r tournament.Registration) (tournament.Registration, error) {
	if r.PlayerID == m.failPlayer {
		return tournament.Registration{}, errStoreDown
	}
	r.ID = int64(len(m.registrations) + 1)
	m.registrations = append(m.registrations, r)
	return r, nil
}

// mockSessionStore implements SessionStore for testing.
type mockSessionStore struct {
	sessions []groupsession.Session
}

func (m *mockSessionStore) List(_ context.Context) ([]groupsession.Session, error) {
	return m.sessions, nil
}

func (m *mockSessionStore) Create(_ context.Context, s groupsession.Session) (groupsession.Session, error) {
	s.ID = int64(len(m.sessions) + 1)
	m.sessions = append(m.sessions, s)
	return s, nil
}

// mockPlanStore implements PlanStore for testing.
type mockPlanStore struct {
	plans []trainingplan.Plan
}

func (m *mockPlanStore) List(_ context.Context) ([]trainingplan.Plan, error) {
	return m.plans, nil
}

func (m *mockPlanStore) Create(_ context.Context, p trainingplan.Plan) (trainingplan.Plan, error) {
	p.ID = int64(len(m.plans) + 1)
	m.plans = append(m.plans, p)
	return p, nil
}

// mockReportStore implements ReportStore for testing.
type mockReportStore struct {
	reports      []report.Report
	scores       []report.PSEScore
	scoreBatches int
	createErr    error
	scoresErr    error
}

func (m *mockReportStore) Create(_ context.Context, r report.Report) (report.Report, error) {
	if m.createErr != nil {
		return report.Report{}, m.createErr
	}
	r.ID = int64(100 + len(m.reports))
	m.reports = append(m.reports, r)
	return r, nil
}

func (m *mockReportStore) CreateScores(_ context.Context, scores []report.PSEScore) ([]report.PSEScore, error) {
	if m.scoresErr != nil {
		return nil, m.scoresErr
	}
	m.scoreBatches++
	m.scores = append(m.scores, scores...)
	return scores, nil
}

// failingSender implements email.Sender and always fails.
type failingSender struct{ calls int }

func (f *failingSender) Send(context.Context, email.Message) (email.Receipt, error) {
	f.calls++
	return email.Receipt{}, errStoreDown
}

func (f *failingSender) SendBatch(context.Context, []email.Message) ([]email.Receipt, error) {
	f.calls++
	return nil, errStoreDown
}

func roster() *mockPlayerStore {
	return &mockPlayerStore{players: []player.Player{
		{ID: 1, FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Level: player.LevelBeginner},
		{ID: 2, FirstName: "Ben", LastName: "Ng", Level: player.LevelIntermediate},
		{ID: 3, FirstName: "Ana", LastName: "Ruiz", Email: "ana.r@example.com", Level: player.LevelAdvanced},
	}}
}
