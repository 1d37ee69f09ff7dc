package groupsession_test

import (
	"errors"
	"testing"
	"time"

	"tennisclub/internal/domain/groupsession"
)

func TestSession_Validate(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		session groupsession.Session
		wantErr bool
	}{
		{"valid", groupsession.Session{Date: date, Time: "17:00", Level: "Intermediate", MaxParticipants: 8}, false},
		{"missing date", groupsession.Session{Time: "17:00", Level: "Intermediate", MaxParticipants: 8}, true},
		{"missing time", groupsession.Session{Date: date, Level: "Intermediate", MaxParticipants: 8}, true},
		{"unknown level", groupsession.Session{Date: date, Time: "17:00", Level: "Expert", MaxParticipants: 8}, true},
		{"no capacity", groupsession.Session{Date: date, Time: "17:00", Level: "Beginner"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	sessions := []groupsession.Session{{ID: 3, Level: "Beginner"}, {ID: 9, Level: "Advanced"}}
	got, err := groupsession.FindByID(sessions, 9)
	if err != nil || got.Level != "Advanced" {
		t.Errorf("FindByID(9) = %+v, %v", got, err)
	}
	if _, err := groupsession.FindByID(sessions, 4); !errors.Is(err, groupsession.ErrNotFound) {
		t.Errorf("FindByID(4) error = %v, want ErrNotFound", err)
	}
}
