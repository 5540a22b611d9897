package repository

import (
	"context"
	"sort"
	"sync"

	"labdoc-data/internal/domain"
)

// Memory repositories back the service when the database is not reachable
// (local development, unit tests). Same semantics as the Postgres
// implementations: listings come back newest first and zero-row mutations
// return ErrNotFound.

// MemoryCaseRecordsRepo keeps case records in a mutex-guarded map.
type MemoryCaseRecordsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.CaseRecord
}

func NewMemoryCaseRecordsRepo() *MemoryCaseRecordsRepo {
	return &MemoryCaseRecordsRepo{nextID: 1, byID: map[int64]domain.CaseRecord{}}
}

var _ CaseRecordsRepository = (*MemoryCaseRecordsRepo)(nil)

func (r *MemoryCaseRecordsRepo) Get(_ context.Context, id int64) (*domain.CaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *MemoryCaseRecordsRepo) List(_ context.Context) ([]*domain.CaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.CaseRecord, 0, len(r.byID))
	for id := range r.byID {
		rec := r.byID[id]
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryCaseRecordsRepo) Create(_ context.Context, rec *domain.CaseRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *rec
	stored.ID = id
	r.byID[id] = stored
	return id, nil
}

func (r *MemoryCaseRecordsRepo) Update(_ context.Context, rec *domain.CaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[rec.ID] = *rec
	return nil
}

func (r *MemoryCaseRecordsRepo) UpdateBlob(_ context.Context, id int64, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Blob = append([]byte(nil), blob...)
	r.byID[id] = rec
	return nil
}

func (r *MemoryCaseRecordsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryCaseRecordsRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

// MemoryDosageAssignmentsRepo keeps dosage assignments in memory.
type MemoryDosageAssignmentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.DosageAssignment
}

func NewMemoryDosageAssignmentsRepo() *MemoryDosageAssignmentsRepo {
	return &MemoryDosageAssignmentsRepo{nextID: 1, byID: map[int64]domain.DosageAssignment{}}
}

var _ DosageAssignmentsRepository = (*MemoryDosageAssignmentsRepo)(nil)

func (r *MemoryDosageAssignmentsRepo) Get(_ context.Context, id int64) (*domain.DosageAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryDosageAssignmentsRepo) List(_ context.Context) ([]*domain.DosageAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.DosageAssignment, 0, len(r.byID))
	for id := range r.byID {
		a := r.byID[id]
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryDosageAssignmentsRepo) Create(_ context.Context, a *domain.DosageAssignment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *a
	stored.ID = id
	r.byID[id] = stored
	return id, nil
}

func (r *MemoryDosageAssignmentsRepo) Update(_ context.Context, a *domain.DosageAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *MemoryDosageAssignmentsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// MemoryToxicologyAssignmentsRepo keeps toxicology assignments in memory.
type MemoryToxicologyAssignmentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.ToxicologyAssignment
}

func NewMemoryToxicologyAssignmentsRepo() *MemoryToxicologyAssignmentsRepo {
	return &MemoryToxicologyAssignmentsRepo{nextID: 1, byID: map[int64]domain.ToxicologyAssignment{}}
}

var _ ToxicologyAssignmentsRepository = (*MemoryToxicologyAssignmentsRepo)(nil)

func (r *MemoryToxicologyAssignmentsRepo) Get(_ context.Context, id int64) (*domain.ToxicologyAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *MemoryToxicologyAssignmentsRepo) List(_ context.Context) ([]*domain.ToxicologyAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.ToxicologyAssignment, 0, len(r.byID))
	for id := range r.byID {
		a := r.byID[id]
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryToxicologyAssignmentsRepo) Create(_ context.Context, a *domain.ToxicologyAssignment) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *a
	stored.ID = id
	r.byID[id] = stored
	return id, nil
}

func (r *MemoryToxicologyAssignmentsRepo) Update(_ context.Context, a *domain.ToxicologyAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *MemoryToxicologyAssignmentsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// MemoryDosageMemorandaRepo keeps dosage memoranda in memory.
type MemoryDosageMemorandaRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.DosageMemorandum
}

func NewMemoryDosageMemorandaRepo() *MemoryDosageMemorandaRepo {
	return &MemoryDosageMemorandaRepo{nextID: 1, byID: map[int64]domain.DosageMemorandum{}}
}

var _ DosageMemorandaRepository = (*MemoryDosageMemorandaRepo)(nil)

func (r *MemoryDosageMemorandaRepo) Get(_ context.Context, id int64) (*domain.DosageMemorandum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryDosageMemorandaRepo) List(_ context.Context) ([]*domain.DosageMemorandum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.DosageMemorandum, 0, len(r.byID))
	for id := range r.byID {
		m := r.byID[id]
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryDosageMemorandaRepo) Create(_ context.Context, m *domain.DosageMemorandum) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *m
	stored.ID = id
	r.byID[id] = stored
	return id, nil
}

func (r *MemoryDosageMemorandaRepo) Update(_ context.Context, m *domain.DosageMemorandum) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[m.ID] = *m
	return nil
}

func (r *MemoryDosageMemorandaRepo) UpdateBlob(_ context.Context, id int64, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Blob = append([]byte(nil), blob...)
	r.byID[id] = m
	return nil
}

func (r *MemoryDosageMemorandaRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// MemoryToxicologyMemorandaRepo keeps toxicology memoranda in memory.
type MemoryToxicologyMemorandaRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.ToxicologyMemorandum
}

func NewMemoryToxicologyMemorandaRepo() *MemoryToxicologyMemorandaRepo {
	return &MemoryToxicologyMemorandaRepo{nextID: 1, byID: map[int64]domain.ToxicologyMemorandum{}}
}

var _ ToxicologyMemorandaRepository = (*MemoryToxicologyMemorandaRepo)(nil)

func (r *MemoryToxicologyMemorandaRepo) Get(_ context.Context, id int64) (*domain.ToxicologyMemorandum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryToxicologyMemorandaRepo) List(_ context.Context) ([]*domain.ToxicologyMemorandum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.ToxicologyMemorandum, 0, len(r.byID))
	for id := range r.byID {
		m := r.byID[id]
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryToxicologyMemorandaRepo) Create(_ context.Context, m *domain.ToxicologyMemorandum) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	stored := *m
	stored.ID = id
	r.byID[id] = stored
	return id, nil
}

func (r *MemoryToxicologyMemorandaRepo) Update(_ context.Context, m *domain.ToxicologyMemorandum) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[m.ID] = *m
	return nil
}

func (r *MemoryToxicologyMemorandaRepo) UpdateBlob(_ context.Context, id int64, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Blob = append([]byte(nil), blob...)
	r.byID[id] = m
	return nil
}

func (r *MemoryToxicologyMemorandaRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// MemoryEmployeesRepo serves a fixed roster. Seed it with the operators a
// development session needs.
type MemoryEmployeesRepo struct {
	mu   sync.RWMutex
	byID map[int64]domain.Employee
}

func NewMemoryEmployeesRepo(seed ...domain.Employee) *MemoryEmployeesRepo {
	r := &MemoryEmployeesRepo{byID: map[int64]domain.Employee{}}
	for _, e := range seed {
		r.byID[e.ID] = e
	}
	return r
}

var _ EmployeesRepository = (*MemoryEmployeesRepo)(nil)

func (r *MemoryEmployeesRepo) Get(_ context.Context, id int64) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *MemoryEmployeesRepo) List(_ context.Context) ([]*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Employee, 0, len(r.byID))
	for id := range r.byID {
		e := r.byID[id]
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
