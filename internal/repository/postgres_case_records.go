package repository

import (
	"context"
	"database/sql"
	"fmt"

	"labdoc-data/internal/domain"
)

// PostgresCaseRecordsRepository implements CaseRecordsRepository on the
// case_records table.
type PostgresCaseRecordsRepository struct {
	db *sql.DB
}

func NewPostgresCaseRecordsRepository(db *sql.DB) *PostgresCaseRecordsRepository {
	return &PostgresCaseRecordsRepository{db: db}
}

var _ CaseRecordsRepository = (*PostgresCaseRecordsRepository)(nil)

const caseRecordColumns = `
	id,
	COALESCE(subject_name, ''),
	COALESCE(dni, ''),
	COALESCE(age, ''),
	COALESCE(qualitative, ''),
	COALESCE(quantitative, ''),
	COALESCE(document_number, ''),
	COALESCE(report_number, ''),
	COALESCE(memo_name, ''),
	COALESCE(origin, ''),
	COALESCE(sample_type, ''),
	COALESCE(conducting_officer, ''),
	blob,
	employee_id`

func scanCaseRecord(row interface{ Scan(...any) error }) (*domain.CaseRecord, error) {
	var rec domain.CaseRecord
	err := row.Scan(
		&rec.ID,
		&rec.SubjectName,
		&rec.DNI,
		&rec.Age,
		&rec.Qualitative,
		&rec.Quantitative,
		&rec.DocumentNumber,
		&rec.ReportNumber,
		&rec.MemoName,
		&rec.Origin,
		&rec.SampleType,
		&rec.ConductingOfficer,
		&rec.Blob,
		&rec.EmployeeID,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresCaseRecordsRepository) Get(ctx context.Context, id int64) (*domain.CaseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+caseRecordColumns+` FROM case_records WHERE id = $1`, id)
	rec, err := scanCaseRecord(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get case record: %w", err)
	}
	return rec, nil
}

func (r *PostgresCaseRecordsRepository) List(ctx context.Context) ([]*domain.CaseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+caseRecordColumns+` FROM case_records ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list case records: %w", err)
	}
	defer rows.Close()

	var out []*domain.CaseRecord
	for rows.Next() {
		rec, err := scanCaseRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresCaseRecordsRepository) Create(ctx context.Context, rec *domain.CaseRecord) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO case_records (
			subject_name, dni, age, qualitative, quantitative,
			document_number, report_number, memo_name, origin,
			sample_type, conducting_officer, blob, employee_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		rec.SubjectName, rec.DNI, rec.Age, rec.Qualitative, rec.Quantitative,
		rec.DocumentNumber, rec.ReportNumber, rec.MemoName, rec.Origin,
		rec.SampleType, rec.ConductingOfficer, rec.Blob, rec.EmployeeID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create case record: %w", err)
	}
	return id, nil
}

func (r *PostgresCaseRecordsRepository) Update(ctx context.Context, rec *domain.CaseRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE case_records SET
			subject_name = $1, dni = $2, age = $3, qualitative = $4,
			quantitative = $5, document_number = $6, report_number = $7,
			memo_name = $8, origin = $9, sample_type = $10,
			conducting_officer = $11, blob = $12, employee_id = $13
		WHERE id = $14`,
		rec.SubjectName, rec.DNI, rec.Age, rec.Qualitative, rec.Quantitative,
		rec.DocumentNumber, rec.ReportNumber, rec.MemoName, rec.Origin,
		rec.SampleType, rec.ConductingOfficer, rec.Blob, rec.EmployeeID, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update case record: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresCaseRecordsRepository) UpdateBlob(ctx context.Context, id int64, blob []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE case_records SET blob = $1 WHERE id = $2`, blob, id)
	if err != nil {
		return fmt.Errorf("update case record blob: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresCaseRecordsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM case_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete case record: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresCaseRecordsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM case_records WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("case record exists: %w", err)
	}
	return exists, nil
}

// requireRow maps a zero-row mutation onto ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
