package player

import (
	"context"

	domain "tennisclub/internal/domain/player"
)

// Store persists Player state.
type Store interface {
	List(ctx context.Context) ([]domain.Player, error)
	Create(ctx context.Context, value domain.Player) (domain.Player, error)
	Update(ctx context.Context, value domain.Player) error
}
