package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"tennisclub/internal/adapters/email"
	"tennisclub/internal/domain/player"
	"tennisclub/internal/domain/tournament"
)

// TournamentStore defines the interface for tournament persistence.
type TournamentStore interface {
	List(ctx context.Context) ([]tournament.Tournament, error)
	Create(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error)
	Register(ctx context.Context, r tournament.Registration) (tournament.Registration, error)
}

// PlayerLister is the read side of PlayerStore.
type PlayerLister interface {
	List(ctx context.Context) ([]player.Player, error)
}

// --- Create Tournament ---

// CreateTournamentInput carries the tournament form.
type CreateTournamentInput struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Type        string
	Level       string
	Description string
}

// CreateTournamentDeps holds dependencies for CreateTournament.
type CreateTournamentDeps struct {
	TournamentStore TournamentStore
	Now             func() time.Time
}

// ExecuteCreateTournament adds a tournament.
// PRE: name and start date set; type and level from the offered choices
// POST: tournament row created
func ExecuteCreateTournament(ctx context.Context, input CreateTournamentInput, deps CreateTournamentDeps) (tournament.Tournament, error) {
	t := tournament.Tournament{
		Name:        input.Name,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    input.Location,
		Type:        input.Type,
		Level:       input.Level,
		Description: input.Description,
		CreatedAt:   deps.Now(),
	}
	if err := t.Validate(); err != nil {
		return tournament.Tournament{}, err
	}

	created, err := deps.TournamentStore.Create(ctx, t)
	if err != nil {
		return tournament.Tournament{}, err
	}

	slog.Info("tournament_event", "event", "tournament_created", "tournament_id", created.ID, "start", created.StartDate.Format("2006-01-02"))
	return created, nil
}

// --- Register Players ---

// RegisterPlayersInput names a tournament and the selected players by id.
type RegisterPlayersInput struct {
	TournamentID int64
	PlayerIDs    []int64
}

// RegisterPlayersDeps holds dependencies for RegisterPlayers.
type RegisterPlayersDeps struct {
	TournamentStore TournamentStore
	PlayerStore     PlayerLister
	Sender          email.Sender // nil disables confirmations
	Now             func() time.Time
}

// RegisterPlayersResult reports each selected player's outcome.
type RegisterPlayersResult struct {
	Tournament tournament.Tournament
	Registered []player.Player
	Failures   []error // one per player that could not be registered
}

// ExecuteRegisterPlayers inserts one registration per selected player.
// A failed insert is recorded and the remaining players are still attempted; nothing is rolled back.
// Duplicate registrations are not checked.
// PRE: TournamentID names a loaded tournament; at least one player selected
// POST: len(Registered)+len(Failures) == len(PlayerIDs)
func ExecuteRegisterPlayers(ctx context.Context, input RegisterPlayersInput, deps RegisterPlayersDeps) (RegisterPlayersResult, error) {
	if len(input.PlayerIDs) == 0 {
		return RegisterPlayersResult{}, errors.New("select at least one player")
	}

	tournaments, err := deps.TournamentStore.List(ctx)
	if err != nil {
		return RegisterPlayersResult{}, err
	}
	t, err := tournament.FindByID(tournaments, input.TournamentID)
	if err != nil {
		return RegisterPlayersResult{}, fmt.Errorf("tournament %d: %w", input.TournamentID, err)
	}

	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return RegisterPlayersResult{}, err
	}

	result := RegisterPlayersResult{Tournament: t}
	for _, id := range input.PlayerIDs {
		p, err := player.FindByID(players, id)
		if err != nil {
			result.Failures = append(result.Failures, fmt.Errorf("player %d: %w", id, err))
			continue
		}
		reg := tournament.Registration{TournamentID: t.ID, PlayerID: p.ID, RegistrationDate: deps.Now()}
		if err := reg.Validate(); err != nil {
			result.Failures = append(result.Failures, fmt.Errorf("%s: %w", p.DisplayName(), err))
			continue
		}
		if _, err := deps.TournamentStore.Register(ctx, reg); err != nil {
			result.Failures = append(result.Failures, fmt.Errorf("%s: %w", p.DisplayName(), err))
			continue
		}
		result.Registered = append(result.Registered, p)
	}

	slog.Info("tournament_event", "event", "players_registered", "tournament_id", t.ID,
		"registered", len(result.Registered), "failed", len(result.Failures))

	sendConfirmations(ctx, deps.Sender, t, result.Registered)
	return result, nil
}

// sendConfirmations emails every registered player that has an address. Failures are only logged.
func sendConfirmations(ctx context.Context, sender email.Sender, t tournament.Tournament, registered []player.Player) {
	if sender == nil {
		return
	}
	var msgs []email.Message
	for _, p := range registered {
		if p.Email == "" {
			continue
		}
		msgs = append(msgs, confirmationMessage(t, p))
	}
	if len(msgs) == 0 {
		return
	}
	if _, err := sender.SendBatch(ctx, msgs); err != nil {
		slog.Warn("tournament_event", "event", "confirmation_failed", "tournament_id", t.ID, "error", err.Error())
	}
}

func confirmationMessage(t tournament.Tournament, p player.Player) email.Message {
	dates := t.StartDate.Format("Mon 2 Jan 2006")
	if last := t.LastDay(); !last.Equal(t.StartDate) {
		dates += " to " + last.Format("Mon 2 Jan 2006")
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>You are registered for <strong>%s</strong> (%s, %s).</p><p>%s%s</p>",
		html.EscapeString(p.FirstName),
		html.EscapeString(t.Name),
		html.EscapeString(t.Type),
		html.EscapeString(t.Level),
		dates,
		locationSuffix(t.Location),
	)
	return email.Message{
		To:      []string{p.Email},
		Subject: "Registered: " + t.Name,
		HTML:    body,
	}
}

func locationSuffix(location string) string {
	if location == "" {
		return ""
	}
	return " at " + html.EscapeString(location)
}
