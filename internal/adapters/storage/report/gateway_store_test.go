package report

import (
	"context"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"tennisclub/internal/adapters/storage"
	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/report"
)

func newTestStore(t *testing.T) *GatewayStore {
	t.Helper()
	db, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewGatewayStore(gateway.New(storage.NewSQLiteBackend(db)))
}

func TestGatewayStore_GroupReportKeepsAttendance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.Report{
		TrainingType: domain.TypeGroup, SessionID: 2,
		ReportDate:        time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		PerformanceRating: 4,
		Attendance:        []string{"Ana Ruiz", "Ben Ng"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reports, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := reports[0]
	if got.ID != created.ID || got.SessionID != 2 || got.TrainingPlanID != 0 {
		t.Errorf("report = %+v", got)
	}
	if !reflect.DeepEqual(got.Attendance, []string{"Ana Ruiz", "Ben Ng"}) {
		t.Errorf("attendance = %v", got.Attendance)
	}
}

func TestGatewayStore_IndividualReportHasNoAttendance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, domain.Report{
		TrainingType: domain.TypeIndividual, TrainingPlanID: 5,
		ReportDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), PerformanceRating: 3,
	})
	reports, _ := s.List(ctx)
	if reports[0].TrainingPlanID != 5 || len(reports[0].Attendance) != 0 {
		t.Errorf("report = %+v", reports[0])
	}
}

func TestGatewayStore_CreateScoresBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateScores(ctx, []domain.PSEScore{
		{PlayerID: 1, ReportID: 9, Score: 7},
		{PlayerID: 2, ReportID: 9, Score: 4},
	})
	if err != nil {
		t.Fatalf("CreateScores: %v", err)
	}
	if created[0].ID == 0 || created[1].ID == 0 {
		t.Errorf("ids not assigned: %+v", created)
	}

	scores, err := s.ListScores(ctx)
	if err != nil {
		t.Fatalf("ListScores: %v", err)
	}
	byReport := domain.ScoresByReport(scores)
	if len(byReport[9]) != 2 || byReport[9][1].Score != 4 {
		t.Errorf("scores = %+v", byReport)
	}
}
