package report

import (
	"context"

	domain "tennisclub/internal/domain/report"
)

// Store persists training reports and their PSE scores.
type Store interface {
	List(ctx context.Context) ([]domain.Report, error)
	Create(ctx context.Context, value domain.Report) (domain.Report, error)
	ListScores(ctx context.Context) ([]domain.PSEScore, error)
	// CreateScores inserts every score in one batch.
	CreateScores(ctx context.Context, scores []domain.PSEScore) ([]domain.PSEScore, error)
}
