package groupsession

import (
	"errors"
	"fmt"
	"time"

	"tennisclub/internal/domain/validation"
)

// DefaultMaxParticipants is the form's initial value.
const DefaultMaxParticipants = 8

// ErrNotFound is returned when a session id does not match any loaded row.
var ErrNotFound = errors.New("group training session not found")

// Session is a scheduled group training.
// MaxParticipants is advisory only; attendance is never checked against it.
type Session struct {
	ID              int64
	Date            time.Time `validate:"required" label:"date"`
	Time            string    `validate:"required" label:"time"` // "15:04"
	Level           string    `validate:"oneof=Beginner Intermediate Advanced Professional" label:"training level"`
	MaxParticipants int       `validate:"min=1" label:"maximum participants"`
	Notes           string
	CreatedAt       time.Time
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Session) Validate() error {
	return validation.Struct(s)
}

// Label is the "date - time (level)" text used in selections and headings.
func (s Session) Label() string {
	return fmt.Sprintf("%s - %s (%s)", s.Date.Format("2006-01-02"), s.Time, s.Level)
}

// FindByID returns the first session with the given id.
func FindByID(sessions []Session, id int64) (Session, error) {
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return Session{}, ErrNotFound
}
