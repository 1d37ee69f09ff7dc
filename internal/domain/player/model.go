package player

import (
	"errors"
	"strings"
	"time"

	"tennisclub/internal/domain/validation"
)

// Level constants.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelProfessional = "Professional"
)

// Levels lists playing levels in the order forms offer them.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelProfessional}

// AgeGroups lists age groups in the order forms offer them. The first entry is the default.
var AgeGroups = []string{"U10", "U12", "U14", "U16", "U18", "Senior"}

// ErrNotFound is returned when a player id does not match any loaded row.
var ErrNotFound = errors.New("player not found")

// Player is a club member on the roster.
type Player struct {
	ID        int64
	FirstName string `validate:"required" label:"first name"`
	LastName  string `validate:"required" label:"last name"`
	BirthDate time.Time
	Email     string
	Phone     string
	Level     string `validate:"oneof=Beginner Intermediate Advanced Professional" label:"level"`
	AgeGroup  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims the name fields and defaults an unrecognized age group.
// POST: FirstName/LastName/Email/Phone trimmed; AgeGroup is one of AgeGroups
func (p *Player) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.AgeGroup = NormalizeAgeGroup(p.AgeGroup)
}

// Validate checks if the Player has valid data.
// PRE: Normalize has been called
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: first and last name are non-empty
func (p *Player) Validate() error {
	return validation.Struct(p)
}

// DisplayName is the "First Last" label used in selections and reports.
func (p Player) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// Matches reports whether term occurs, case-insensitively, in any displayed column.
// An empty term matches everything.
func (p Player) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	row := strings.Join([]string{p.FirstName, p.LastName, p.Email, p.Phone, p.Level, p.AgeGroup}, " ")
	return strings.Contains(strings.ToLower(row), term)
}

// NormalizeAgeGroup returns group if it is a known age group, otherwise the first option.
func NormalizeAgeGroup(group string) string {
	for _, g := range AgeGroups {
		if g == group {
			return g
		}
	}
	return AgeGroups[0]
}

// Filter returns the players matching term, preserving store order.
func Filter(players []Player, term string) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

// FindByID returns the first player with the given id.
func FindByID(players []Player, id int64) (Player, error) {
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return Player{}, ErrNotFound
}
