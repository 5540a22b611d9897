package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"labdoc-data/internal/domain"
)

// PostgresDosageAssignmentsRepository implements DosageAssignmentsRepository
// on the dosage_assignments table.
type PostgresDosageAssignmentsRepository struct {
	db *sql.DB
}

func NewPostgresDosageAssignmentsRepository(db *sql.DB) *PostgresDosageAssignmentsRepository {
	return &PostgresDosageAssignmentsRepository{db: db}
}

var _ DosageAssignmentsRepository = (*PostgresDosageAssignmentsRepository)(nil)

const dosageAssignmentColumns = `
	id,
	COALESCE(area, ''),
	COALESCE(qualitative, ''),
	COALESCE(status, ''),
	case_record_id,
	assignee_id,
	issuer_id`

func scanDosageAssignment(row interface{ Scan(...any) error }) (*domain.DosageAssignment, error) {
	var a domain.DosageAssignment
	err := row.Scan(&a.ID, &a.Area, &a.Qualitative, &a.Status,
		&a.CaseRecordID, &a.AssigneeID, &a.IssuerID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresDosageAssignmentsRepository) Get(ctx context.Context, id int64) (*domain.DosageAssignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dosageAssignmentColumns+` FROM dosage_assignments WHERE id = $1`, id)
	a, err := scanDosageAssignment(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dosage assignment: %w", err)
	}
	return a, nil
}

func (r *PostgresDosageAssignmentsRepository) List(ctx context.Context) ([]*domain.DosageAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dosageAssignmentColumns+` FROM dosage_assignments ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list dosage assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.DosageAssignment
	for rows.Next() {
		a, err := scanDosageAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dosage assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresDosageAssignmentsRepository) Create(ctx context.Context, a *domain.DosageAssignment) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO dosage_assignments (
			area, qualitative, status, case_record_id, assignee_id, issuer_id
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		a.Area, a.Qualitative, a.Status, a.CaseRecordID, a.AssigneeID, a.IssuerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create dosage assignment: %w", err)
	}
	return id, nil
}

func (r *PostgresDosageAssignmentsRepository) Update(ctx context.Context, a *domain.DosageAssignment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dosage_assignments SET
			area = $1, qualitative = $2, status = $3,
			case_record_id = $4, assignee_id = $5, issuer_id = $6
		WHERE id = $7`,
		a.Area, a.Qualitative, a.Status, a.CaseRecordID, a.AssigneeID, a.IssuerID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update dosage assignment: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresDosageAssignmentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dosage_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dosage assignment: %w", err)
	}
	return requireRow(res)
}

// PostgresToxicologyAssignmentsRepository implements
// ToxicologyAssignmentsRepository on the toxicology_assignments table.
// Results live in a JSON column.
type PostgresToxicologyAssignmentsRepository struct {
	db *sql.DB
}

func NewPostgresToxicologyAssignmentsRepository(db *sql.DB) *PostgresToxicologyAssignmentsRepository {
	return &PostgresToxicologyAssignmentsRepository{db: db}
}

var _ ToxicologyAssignmentsRepository = (*PostgresToxicologyAssignmentsRepository)(nil)

const toxicologyAssignmentColumns = `
	id,
	COALESCE(area, ''),
	COALESCE(status, ''),
	COALESCE(results::text, '{}'),
	case_record_id,
	assignee_id,
	issuer_id`

func scanToxicologyAssignment(row interface{ Scan(...any) error }) (*domain.ToxicologyAssignment, error) {
	var (
		a       domain.ToxicologyAssignment
		results string
	)
	err := row.Scan(&a.ID, &a.Area, &a.Status, &results,
		&a.CaseRecordID, &a.AssigneeID, &a.IssuerID)
	if err != nil {
		return nil, err
	}
	// A malformed legacy payload degrades to an empty screen instead of
	// failing the whole listing.
	_ = json.Unmarshal([]byte(results), &a.Results)
	return &a, nil
}

func (r *PostgresToxicologyAssignmentsRepository) Get(ctx context.Context, id int64) (*domain.ToxicologyAssignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+toxicologyAssignmentColumns+` FROM toxicology_assignments WHERE id = $1`, id)
	a, err := scanToxicologyAssignment(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get toxicology assignment: %w", err)
	}
	return a, nil
}

func (r *PostgresToxicologyAssignmentsRepository) List(ctx context.Context) ([]*domain.ToxicologyAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+toxicologyAssignmentColumns+` FROM toxicology_assignments ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list toxicology assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.ToxicologyAssignment
	for rows.Next() {
		a, err := scanToxicologyAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan toxicology assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresToxicologyAssignmentsRepository) Create(ctx context.Context, a *domain.ToxicologyAssignment) (int64, error) {
	results, err := json.Marshal(a.Results)
	if err != nil {
		return 0, fmt.Errorf("encode toxicology results: %w", err)
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO toxicology_assignments (
			area, status, results, case_record_id, assignee_id, issuer_id
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		a.Area, a.Status, results, a.CaseRecordID, a.AssigneeID, a.IssuerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create toxicology assignment: %w", err)
	}
	return id, nil
}

func (r *PostgresToxicologyAssignmentsRepository) Update(ctx context.Context, a *domain.ToxicologyAssignment) error {
	results, err := json.Marshal(a.Results)
	if err != nil {
		return fmt.Errorf("encode toxicology results: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE toxicology_assignments SET
			area = $1, status = $2, results = $3,
			case_record_id = $4, assignee_id = $5, issuer_id = $6
		WHERE id = $7`,
		a.Area, a.Status, results, a.CaseRecordID, a.AssigneeID, a.IssuerID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update toxicology assignment: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresToxicologyAssignmentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM toxicology_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete toxicology assignment: %w", err)
	}
	return requireRow(res)
}
