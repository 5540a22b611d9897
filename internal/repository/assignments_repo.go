package repository

import (
	"context"

	"labdoc-data/internal/domain"
)

// DosageAssignmentsRepository persists dosage (alcohol) assignments.
type DosageAssignmentsRepository interface {
	Get(ctx context.Context, id int64) (*domain.DosageAssignment, error)
	List(ctx context.Context) ([]*domain.DosageAssignment, error)
	Create(ctx context.Context, a *domain.DosageAssignment) (int64, error)
	Update(ctx context.Context, a *domain.DosageAssignment) error
	Delete(ctx context.Context, id int64) error
}

// ToxicologyAssignmentsRepository persists toxicology screen assignments.
type ToxicologyAssignmentsRepository interface {
	Get(ctx context.Context, id int64) (*domain.ToxicologyAssignment, error)
	List(ctx context.Context) ([]*domain.ToxicologyAssignment, error)
	Create(ctx context.Context, a *domain.ToxicologyAssignment) (int64, error)
	Update(ctx context.Context, a *domain.ToxicologyAssignment) error
	Delete(ctx context.Context, id int64) error
}
