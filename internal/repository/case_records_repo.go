package repository

import (
	"context"

	"labdoc-data/internal/domain"
)

// CaseRecordsRepository persists case records and their document blobs.
type CaseRecordsRepository interface {
	Get(ctx context.Context, id int64) (*domain.CaseRecord, error)
	List(ctx context.Context) ([]*domain.CaseRecord, error)
	Create(ctx context.Context, rec *domain.CaseRecord) (int64, error)
	Update(ctx context.Context, rec *domain.CaseRecord) error
	// UpdateBlob replaces only the document blob, leaving field columns as
	// they are. Last write wins under concurrency.
	UpdateBlob(ctx context.Context, id int64, blob []byte) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// EmployeesRepository reads operator identities for visibility filtering and
// attribution. Never written by this service.
type EmployeesRepository interface {
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}
