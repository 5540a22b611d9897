package repository

import (
	"context"
	"database/sql"
	"fmt"

	"labdoc-data/internal/domain"
)

// PostgresDosageMemorandaRepository implements DosageMemorandaRepository on
// the dosage_memoranda table.
type PostgresDosageMemorandaRepository struct {
	db *sql.DB
}

func NewPostgresDosageMemorandaRepository(db *sql.DB) *PostgresDosageMemorandaRepository {
	return &PostgresDosageMemorandaRepository{db: db}
}

var _ DosageMemorandaRepository = (*PostgresDosageMemorandaRepository)(nil)

const dosageMemoColumns = `
	id,
	COALESCE(memo_date, ''),
	COALESCE(memo_number, ''),
	COALESCE(rank, ''),
	COALESCE(officer_name, ''),
	COALESCE(reference, ''),
	COALESCE(report_number, ''),
	blob,
	case_record_id`

func scanDosageMemo(row interface{ Scan(...any) error }) (*domain.DosageMemorandum, error) {
	var m domain.DosageMemorandum
	err := row.Scan(&m.ID, &m.Date, &m.MemoNumber, &m.Rank, &m.OfficerName,
		&m.Reference, &m.ReportNumber, &m.Blob, &m.CaseRecordID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresDosageMemorandaRepository) Get(ctx context.Context, id int64) (*domain.DosageMemorandum, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dosageMemoColumns+` FROM dosage_memoranda WHERE id = $1`, id)
	m, err := scanDosageMemo(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dosage memorandum: %w", err)
	}
	return m, nil
}

func (r *PostgresDosageMemorandaRepository) List(ctx context.Context) ([]*domain.DosageMemorandum, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dosageMemoColumns+` FROM dosage_memoranda ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list dosage memoranda: %w", err)
	}
	defer rows.Close()

	var out []*domain.DosageMemorandum
	for rows.Next() {
		m, err := scanDosageMemo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dosage memorandum: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresDosageMemorandaRepository) Create(ctx context.Context, m *domain.DosageMemorandum) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO dosage_memoranda (
			memo_date, memo_number, rank, officer_name, reference,
			report_number, blob, case_record_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		m.Date, m.MemoNumber, m.Rank, m.OfficerName, m.Reference,
		m.ReportNumber, m.Blob, m.CaseRecordID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create dosage memorandum: %w", err)
	}
	return id, nil
}

func (r *PostgresDosageMemorandaRepository) Update(ctx context.Context, m *domain.DosageMemorandum) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dosage_memoranda SET
			memo_date = $1, memo_number = $2, rank = $3, officer_name = $4,
			reference = $5, report_number = $6, blob = $7, case_record_id = $8
		WHERE id = $9`,
		m.Date, m.MemoNumber, m.Rank, m.OfficerName, m.Reference,
		m.ReportNumber, m.Blob, m.CaseRecordID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update dosage memorandum: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresDosageMemorandaRepository) UpdateBlob(ctx context.Context, id int64, blob []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dosage_memoranda SET blob = $1 WHERE id = $2`, blob, id)
	if err != nil {
		return fmt.Errorf("update dosage memorandum blob: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresDosageMemorandaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dosage_memoranda WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dosage memorandum: %w", err)
	}
	return requireRow(res)
}

// PostgresToxicologyMemorandaRepository implements
// ToxicologyMemorandaRepository on the toxicology_memoranda table.
type PostgresToxicologyMemorandaRepository struct {
	db *sql.DB
}

func NewPostgresToxicologyMemorandaRepository(db *sql.DB) *PostgresToxicologyMemorandaRepository {
	return &PostgresToxicologyMemorandaRepository{db: db}
}

var _ ToxicologyMemorandaRepository = (*PostgresToxicologyMemorandaRepository)(nil)

const toxMemoColumns = `
	id,
	COALESCE(memo_date, ''),
	COALESCE(memo_number, ''),
	COALESCE(rank, ''),
	COALESCE(officer_name, ''),
	COALESCE(reference_report, ''),
	blob,
	case_record_id`

func scanToxMemo(row interface{ Scan(...any) error }) (*domain.ToxicologyMemorandum, error) {
	var m domain.ToxicologyMemorandum
	err := row.Scan(&m.ID, &m.Date, &m.MemoNumber, &m.Rank, &m.OfficerName,
		&m.ReferenceReport, &m.Blob, &m.CaseRecordID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresToxicologyMemorandaRepository) Get(ctx context.Context, id int64) (*domain.ToxicologyMemorandum, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+toxMemoColumns+` FROM toxicology_memoranda WHERE id = $1`, id)
	m, err := scanToxMemo(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get toxicology memorandum: %w", err)
	}
	return m, nil
}

func (r *PostgresToxicologyMemorandaRepository) List(ctx context.Context) ([]*domain.ToxicologyMemorandum, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+toxMemoColumns+` FROM toxicology_memoranda ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list toxicology memoranda: %w", err)
	}
	defer rows.Close()

	var out []*domain.ToxicologyMemorandum
	for rows.Next() {
		m, err := scanToxMemo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan toxicology memorandum: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresToxicologyMemorandaRepository) Create(ctx context.Context, m *domain.ToxicologyMemorandum) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO toxicology_memoranda (
			memo_date, memo_number, rank, officer_name, reference_report,
			blob, case_record_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		m.Date, m.MemoNumber, m.Rank, m.OfficerName, m.ReferenceReport,
		m.Blob, m.CaseRecordID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create toxicology memorandum: %w", err)
	}
	return id, nil
}

func (r *PostgresToxicologyMemorandaRepository) Update(ctx context.Context, m *domain.ToxicologyMemorandum) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE toxicology_memoranda SET
			memo_date = $1, memo_number = $2, rank = $3, officer_name = $4,
			reference_report = $5, blob = $6, case_record_id = $7
		WHERE id = $8`,
		m.Date, m.MemoNumber, m.Rank, m.OfficerName, m.ReferenceReport,
		m.Blob, m.CaseRecordID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update toxicology memorandum: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresToxicologyMemorandaRepository) UpdateBlob(ctx context.Context, id int64, blob []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE toxicology_memoranda SET blob = $1 WHERE id = $2`, blob, id)
	if err != nil {
		return fmt.Errorf("update toxicology memorandum blob: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresToxicologyMemorandaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM toxicology_memoranda WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete toxicology memorandum: %w", err)
	}
	return requireRow(res)
}
