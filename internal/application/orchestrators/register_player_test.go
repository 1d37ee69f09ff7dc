package orchestrators

import (
	"context"
	"errors"
	"testing"

	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/validation"
)

// TestExecuteRegisterPlayer_Valid tests creating a player with valid input.
func TestExecuteRegisterPlayer_Valid(t *testing.T) {
	store := &mockPlayerStore{}
	p, err := ExecuteRegisterPlayer(context.Background(), PlayerForm{
		FirstName: "  Ana ",
		LastName:  "Ruiz",
		Level:     player.LevelBeginner,
	}, RegisterPlayerDeps{PlayerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected ID=1, got %d", p.ID)
	}
	if p.FirstName != "Ana" {
		t.Errorf("expected trimmed first name, got %q", p.FirstName)
	}
	if p.AgeGroup != player.AgeGroups[0] {
		t.Errorf("expected default age group %s, got %s", player.AgeGroups[0], p.AgeGroup)
	}
	if !p.CreatedAt.Equal(fixedTime) {
		t.Errorf("expected CreatedAt=%v, got %v", fixedTime, p.CreatedAt)
	}
}

// TestExecuteRegisterPlayer_RequiresNames tests that first and last name are required.
func TestExecuteRegisterPlayer_RequiresNames(t *testing.T) {
	tests := []struct {
		name string
		form PlayerForm
		want string
	}{
		{"missing first", PlayerForm{LastName: "Ruiz", Level: player.LevelBeginner}, "first name is required"},
		{"missing last", PlayerForm{FirstName: "Ana", Level: player.LevelBeginner}, "last name is required"},
		{"blank first", PlayerForm{FirstName: "   ", LastName: "Ruiz", Level: player.LevelBeginner}, "first name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockPlayerStore{}
			_, err := ExecuteRegisterPlayer(context.Background(), tt.form, RegisterPlayerDeps{PlayerStore: store, Now: fixedNow})
			if !errors.Is(err, validation.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
			if len(store.players) != 0 {
				t.Error("expected nothing persisted")
			}
		})
	}
}

// TestExecuteEditPlayer_Overwrites tests that edit sends every field and stamps UpdatedAt.
func TestExecuteEditPlayer_Overwrites(t *testing.T) {
	store := roster()
	p, err := ExecuteEditPlayer(context.Background(), EditPlayerInput{
		PlayerID: 2,
		Form:     PlayerForm{FirstName: "Ben", LastName: "Ng", Level: player.LevelAdvanced, AgeGroup: "U18"},
	}, EditPlayerDeps{PlayerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updated) != 1 || store.updated[0].ID != 2 {
		t.Fatalf("expected one update for id 2, got %+v", store.updated)
	}
	if p.Level != player.LevelAdvanced || p.AgeGroup != "U18" || !p.UpdatedAt.Equal(fixedTime) {
		t.Errorf("unexpected player: %+v", p)
	}
}

// TestExecuteEditPlayer_StoreError tests that store failures are returned unchanged.
func TestExecuteEditPlayer_StoreError(t *testing.T) {
	store := roster()
	store.updateErr = errStoreDown
	_, err := ExecuteEditPlayer(context.Background(), EditPlayerInput{
		PlayerID: 2,
		Form:     PlayerForm{FirstName: "Ben", LastName: "Ng", Level: player.LevelAdvanced},
	}, EditPlayerDeps{PlayerStore: store, Now: fixedNow})
	if !errors.Is(err, errStoreDown) {
		t.Errorf("expected store error, got %v", err)
	}
}
