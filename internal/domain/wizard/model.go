// Package wizard models the two-phase report workflow: a report is created first,
// then one PSE score is collected for every attendee recorded on it.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"tennisclub/internal/domain/report"
)

// Phase is the wizard's current step.
type Phase int

const (
	// Collecting presents the report form.
	Collecting Phase = iota
	// AwaitingScores presents one PSE input per carried attendee.
	AwaitingScores
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Collecting:
		return "collecting"
	case AwaitingScores:
		return "awaiting_scores"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Domain errors.
var (
	ErrNotCollecting      = errors.New("a report is already waiting for PSE scores")
	ErrNotAwaitingScores  = errors.New("no report is waiting for PSE scores")
	ErrNoAttendees        = errors.New("at least one attendee is required to collect scores")
	ErrCancelNotSupported = errors.New("individual reports cannot be cancelled once saved")
	ErrMissingScore       = errors.New("missing PSE score")
	ErrUnknownKind        = errors.New("unknown report kind")
)

// Attendee is a player carried from the report into the scoring step.
type Attendee struct {
	PlayerID int64
	Name     string
}

// Pending is the payload of the AwaitingScores phase.
type Pending struct {
	ReportID  int64
	Attendees []Attendee
}

// Wizard is the per-interaction state of one report workflow.
// Zero Pending means Collecting.
// INVARIANT: pending != nil iff phase is AwaitingScores
type Wizard struct {
	kind    string
	pending *Pending
}

// New returns a wizard in Collecting for the given report kind.
// PRE: kind is report.TypeGroup or report.TypeIndividual
func New(kind string) (*Wizard, error) {
	if kind != report.TypeGroup && kind != report.TypeIndividual {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return &Wizard{kind: kind}, nil
}

// Kind returns report.TypeGroup or report.TypeIndividual.
func (w *Wizard) Kind() string { return w.kind }

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	if w.pending == nil {
		return Collecting
	}
	return AwaitingScores
}

// Pending returns a copy of the carried payload, if any.
func (w *Wizard) Pending() (Pending, bool) {
	if w.pending == nil {
		return Pending{}, false
	}
	p := Pending{ReportID: w.pending.ReportID, Attendees: append([]Attendee(nil), w.pending.Attendees...)}
	return p, true
}

// Advance moves Collecting -> AwaitingScores after the report row was saved.
// PRE: phase is Collecting; reportID > 0; attendees non-empty
// POST: phase is AwaitingScores carrying reportID and attendees
func (w *Wizard) Advance(reportID int64, attendees []Attendee) error {
	if w.pending != nil {
		return ErrNotCollecting
	}
	if reportID <= 0 {
		return errors.New("report id is required")
	}
	if len(attendees) == 0 {
		return ErrNoAttendees
	}
	if w.kind == report.TypeIndividual && len(attendees) != 1 {
		return fmt.Errorf("individual reports score exactly one player, got %d", len(attendees))
	}
	w.pending = &Pending{ReportID: reportID, Attendees: append([]Attendee(nil), attendees...)}
	return nil
}

// BuildScores returns one PSE score row per carried attendee, in attendee order.
// scores maps player id to the submitted score.
// PRE: phase is AwaitingScores
// POST: returns len(Attendees) validated rows, or an error and no rows
func (w *Wizard) BuildScores(scores map[int64]int, now time.Time) ([]report.PSEScore, error) {
	if w.pending == nil {
		return nil, ErrNotAwaitingScores
	}
	rows := make([]report.PSEScore, 0, len(w.pending.Attendees))
	for _, a := range w.pending.Attendees {
		score, ok := scores[a.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrMissingScore, a.Name)
		}
		row := report.PSEScore{
			PlayerID:  a.PlayerID,
			ReportID:  w.pending.ReportID,
			Score:     score,
			CreatedAt: now,
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Complete moves AwaitingScores -> Collecting after every score was saved.
// PRE: phase is AwaitingScores
// POST: phase is Collecting; payload discarded
func (w *Wizard) Complete() error {
	if w.pending == nil {
		return ErrNotAwaitingScores
	}
	w.pending = nil
	return nil
}

// Cancel discards the payload without deleting the saved report, which stays without scores.
// Only group reports can be cancelled.
// PRE: phase is AwaitingScores; kind is Group
// POST: phase is Collecting
func (w *Wizard) Cancel() error {
	if w.kind != report.TypeGroup {
		return ErrCancelNotSupported
	}
	if w.pending == nil {
		return ErrNotAwaitingScores
	}
	w.pending = nil
	return nil
}
