package tournament

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tennisclub/internal/domain/validation"
)

// Type constants.
const (
	TypeSingles = "Singles"
	TypeDoubles = "Doubles"
	TypeMixed   = "Mixed"
)

// Level constants.
const (
	LevelLocal         = "Local"
	LevelRegional      = "Regional"
	LevelNational      = "National"
	LevelInternational = "International"
)

// Types and Levels list choices in the order forms offer them.
var (
	Types  = []string{TypeSingles, TypeDoubles, TypeMixed}
	Levels = []string{LevelLocal, LevelRegional, LevelNational, LevelInternational}
)

// ErrNotFound is returned when a tournament id does not match any loaded row.
var ErrNotFound = errors.New("tournament not found")

// Tournament is a competition players can be registered for.
// INVARIANT: append-only; never updated or deleted
type Tournament struct {
	ID          int64
	Name        string    `validate:"required" label:"tournament name"`
	StartDate   time.Time `validate:"required" label:"start date"`
	EndDate     time.Time
	Location    string
	Type        string `validate:"oneof=Singles Doubles Mixed" label:"tournament type"`
	Level       string `validate:"oneof=Local Regional National International" label:"tournament level"`
	Description string
	CreatedAt   time.Time
}

// Validate checks if the Tournament has valid data.
// PRE: Tournament struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Tournament) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	return validation.Struct(t)
}

// LastDay returns EndDate, or StartDate for a tournament without an end date.
func (t Tournament) LastDay() time.Time {
	if t.EndDate.IsZero() || t.EndDate.Before(t.StartDate) {
		return t.StartDate
	}
	return t.EndDate
}

// Summary is the calendar tooltip text.
func (t Tournament) Summary() string {
	return fmt.Sprintf("Type: %s\nLevel: %s\nLocation: %s", t.Type, t.Level, t.Location)
}

// Registration links a player to a tournament.
// Duplicate registrations are allowed.
type Registration struct {
	ID               int64
	TournamentID     int64 `validate:"required" label:"tournament"`
	PlayerID         int64 `validate:"required" label:"player"`
	RegistrationDate time.Time
}

// Validate checks the registration's invariants.
// POST: Returns nil if valid, error with descriptive message otherwise.
// INVARIANT: TournamentID and PlayerID must be set.
func (r *Registration) Validate() error {
	return validation.Struct(r)
}

// FindByID returns the first tournament with the given id.
func FindByID(tournaments []Tournament, id int64) (Tournament, error) {
	for _, t := range tournaments {
		if t.ID == id {
			return t, nil
		}
	}
	return Tournament{}, ErrNotFound
}
