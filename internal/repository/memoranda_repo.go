package repository

import (
	"context"

	"labdoc-data/internal/domain"
)

// DosageMemorandaRepository persists dosage cover memoranda.
type DosageMemorandaRepository interface {
	Get(ctx context.Context, id int64) (*domain.DosageMemorandum, error)
	List(ctx context.Context) ([]*domain.DosageMemorandum, error)
	Create(ctx context.Context, m *domain.DosageMemorandum) (int64, error)
	Update(ctx context.Context, m *domain.DosageMemorandum) error
	UpdateBlob(ctx context.Context, id int64, blob []byte) error
	Delete(ctx context.Context, id int64) error
}

// ToxicologyMemorandaRepository persists toxicology cover memoranda.
type ToxicologyMemorandaRepository interface {
	Get(ctx context.Context, id int64) (*domain.ToxicologyMemorandum, error)
	List(ctx context.Context) ([]*domain.ToxicologyMemorandum, error)
	Create(ctx context.Context, m *domain.ToxicologyMemorandum) (int64, error)
	Update(ctx context.Context, m *domain.ToxicologyMemorandum) error
	UpdateBlob(ctx context.Context, id int64, blob []byte) error
	Delete(ctx context.Context, id int64) error
}
