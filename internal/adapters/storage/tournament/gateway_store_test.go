package tournament

import (
	"context"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"tennisclub/internal/adapters/storage"
	"tennisclub/internal/adapters/storage/gateway"
	domain "tennisclub/internal/domain/tournament"
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

func TestGatewayStore_CreateAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)

	created, err := s.Create(ctx, domain.Tournament{
		Name: "Autumn Open", StartDate: start, EndDate: start.AddDate(0, 0, 2),
		Location: "Court 1", Type: domain.TypeSingles, Level: domain.LevelLocal,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || !list[0].LastDay().Equal(start.AddDate(0, 0, 2)) {
		t.Errorf("list = %+v", list)
	}
}

func TestGatewayStore_DuplicateRegistrationsAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := s.Register(ctx, domain.Registration{TournamentID: 1, PlayerID: 4}); err != nil {
			t.Fatalf("Register #%d: %v", i+1, err)
		}
	}
	regs, err := s.ListRegistrations(ctx)
	if err != nil {
		t.Fatalf("ListRegistrations: %v", err)
	}
	if len(regs) != 2 || regs[0].ID == regs[1].ID {
		t.Errorf("registrations = %+v", regs)
	}
}
