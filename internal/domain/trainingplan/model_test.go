package trainingplan_test

import (
	"errors"
	"testing"
	"time"

	"tennisclub/internal/domain/trainingplan"
	"tennisclub/internal/domain/validation"
)

func TestEndDateFor(t *testing.T) {
	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	end, err := trainingplan.EndDateFor(start, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("expected %v, got %v", want, end)
	}

	for _, weeks := range []int{0, 53} {
		if _, err := trainingplan.EndDateFor(start, weeks); !errors.Is(err, validation.ErrInvalid) {
			t.Errorf("weeks=%d: expected ErrInvalid, got %v", weeks, err)
		}
	}
}

func TestPlan_Validate(t *testing.T) {
	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		plan    trainingplan.Plan
		wantErr bool
	}{
		{"valid", trainingplan.Plan{PlayerID: 1, StartDate: start, FocusArea: trainingplan.FocusTechnique, Intensity: 3}, false},
		{"focus with space", trainingplan.Plan{PlayerID: 1, StartDate: start, FocusArea: trainingplan.FocusMentalGame, Intensity: 5}, false},
		{"missing player", trainingplan.Plan{StartDate: start, FocusArea: trainingplan.FocusFitness, Intensity: 3}, true},
		{"intensity too high", trainingplan.Plan{PlayerID: 1, StartDate: start, FocusArea: trainingplan.FocusFitness, Intensity: 6}, true},
		{"unknown focus", trainingplan.Plan{PlayerID: 1, StartDate: start, FocusArea: "Napping", Intensity: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
