package tournament

import (
	"context"

	domain "tennisclub/internal/domain/tournament"
)

// Store persists tournaments and their registrations.
type Store interface {
	List(ctx context.Context) ([]domain.Tournament, error)
	Create(ctx context.Context, value domain.Tournament) (domain.Tournament, error)
	ListRegistrations(ctx context.Context) ([]domain.Registration, error)
	Register(ctx context.Context, value domain.Registration) (domain.Registration, error)
}
