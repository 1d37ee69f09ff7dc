package wizard_test

import (
	"errors"
	"testing"
	"time"

	"tennisclub/internal/domain/report"
	"tennisclub/internal/domain/wizard"
)

var now = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func mustNew(t *testing.T, kind string) *wizard.Wizard {
	t.Helper()
	w, err := wizard.New(kind)
	if err != nil {
		t.Fatalf("New(%q): %v", kind, err)
	}
	return w
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := wizard.New("Solo"); !errors.Is(err, wizard.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestWizard_GroupRoundTrip(t *testing.T) {
	w := mustNew(t, report.TypeGroup)
	if w.Phase() != wizard.Collecting {
		t.Fatalf("expected Collecting, got %s", w.Phase())
	}

	attendees := []wizard.Attendee{{PlayerID: 1, Name: "Ana Ivanova"}, {PlayerID: 2, Name: "Leo Petrov"}}
	if err := w.Advance(42, attendees); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if w.Phase() != wizard.AwaitingScores {
		t.Fatalf("expected AwaitingScores, got %s", w.Phase())
	}
	p, ok := w.Pending()
	if !ok || p.ReportID != 42 || len(p.Attendees) != 2 {
		t.Fatalf("unexpected pending payload: %+v", p)
	}

	rows, err := w.BuildScores(map[int64]int{1: 8, 2: 6}, now)
	if err != nil {
		t.Fatalf("BuildScores: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].PlayerID != 1 || rows[0].Score != 8 || rows[0].ReportID != 42 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].PlayerID != 2 || rows[1].Score != 6 || rows[1].ReportID != 42 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	if err := w.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if w.Phase() != wizard.Collecting {
		t.Errorf("expected Collecting after Complete, got %s", w.Phase())
	}
	if _, ok := w.Pending(); ok {
		t.Error("expected payload to be discarded")
	}
}

func TestWizard_AdvanceGuards(t *testing.T) {
	w := mustNew(t, report.TypeGroup)
	if err := w.Advance(1, nil); !errors.Is(err, wizard.ErrNoAttendees) {
		t.Errorf("expected ErrNoAttendees, got %v", err)
	}
	if err := w.Advance(0, []wizard.Attendee{{PlayerID: 1}}); err == nil {
		t.Error("expected error for missing report id")
	}
	if err := w.Advance(1, []wizard.Attendee{{PlayerID: 1}}); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := w.Advance(2, []wizard.Attendee{{PlayerID: 1}}); !errors.Is(err, wizard.ErrNotCollecting) {
		t.Errorf("expected ErrNotCollecting on second Advance, got %v", err)
	}

	ind := mustNew(t, report.TypeIndividual)
	if err := ind.Advance(3, []wizard.Attendee{{PlayerID: 1}, {PlayerID: 2}}); err == nil {
		t.Error("expected individual report to reject two attendees")
	}
}

func TestWizard_BuildScoresRequiresEveryAttendee(t *testing.T) {
	w := mustNew(t, report.TypeGroup)
	_ = w.Advance(9, []wizard.Attendee{{PlayerID: 1, Name: "Ana Ivanova"}, {PlayerID: 2, Name: "Leo Petrov"}})

	if _, err := w.BuildScores(map[int64]int{1: 8}, now); !errors.Is(err, wizard.ErrMissingScore) {
		t.Errorf("expected ErrMissingScore, got %v", err)
	}
	if _, err := w.BuildScores(map[int64]int{1: 8, 2: 11}, now); err == nil {
		t.Error("expected out-of-range score to be rejected")
	}
	if w.Phase() != wizard.AwaitingScores {
		t.Error("failed BuildScores must not leave AwaitingScores")
	}
}

func TestWizard_BuildScoresWhileCollecting(t *testing.T) {
	w := mustNew(t, report.TypeGroup)
	if _, err := w.BuildScores(map[int64]int{}, now); !errors.Is(err, wizard.ErrNotAwaitingScores) {
		t.Errorf("expected ErrNotAwaitingScores, got %v", err)
	}
	if err := w.Complete(); !errors.Is(err, wizard.ErrNotAwaitingScores) {
		t.Errorf("expected ErrNotAwaitingScores from Complete, got %v", err)
	}
}

func TestWizard_CancelAsymmetry(t *testing.T) {
	group := mustNew(t, report.TypeGroup)
	_ = group.Advance(5, []wizard.Attendee{{PlayerID: 1, Name: "Ana Ivanova"}})
	if err := group.Cancel(); err != nil {
		t.Fatalf("group Cancel: %v", err)
	}
	if group.Phase() != wizard.Collecting {
		t.Errorf("expected Collecting after cancel, got %s", group.Phase())
	}
	if err := group.Cancel(); !errors.Is(err, wizard.ErrNotAwaitingScores) {
		t.Errorf("expected ErrNotAwaitingScores on second cancel, got %v", err)
	}

	ind := mustNew(t, report.TypeIndividual)
	_ = ind.Advance(6, []wizard.Attendee{{PlayerID: 1, Name: "Ana Ivanova"}})
	if err := ind.Cancel(); !errors.Is(err, wizard.ErrCancelNotSupported) {
		t.Errorf("expected ErrCancelNotSupported, got %v", err)
	}
	if ind.Phase() != wizard.AwaitingScores {
		t.Error("individual wizard must stay in AwaitingScores")
	}
}

func TestWizard_PendingIsACopy(t *testing.T) {
	w := mustNew(t, report.TypeGroup)
	_ = w.Advance(5, []wizard.Attendee{{PlayerID: 1, Name: "Ana Ivanova"}})
	p, _ := w.Pending()
	p.Attendees[0].PlayerID = 99
	again, _ := w.Pending()
	if again.Attendees[0].PlayerID != 1 {
		t.Error("mutating the returned payload changed wizard state")
	}
}
