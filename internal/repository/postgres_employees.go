package repository

import (
	"context"
	"database/sql"
	"fmt"

	"labdoc-data/internal/domain"
)

// PostgresEmployeesRepository reads from the employees table. The table is
// managed by the personnel system; this service only consumes it.
type PostgresEmployeesRepository struct {
	db *sql.DB
}

func NewPostgresEmployeesRepository(db *sql.DB) *PostgresEmployeesRepository {
	return &PostgresEmployeesRepository{db: db}
}

var _ EmployeesRepository = (*PostgresEmployeesRepository)(nil)

const employeeColumns = `
	id,
	COALESCE(first_name, ''),
	COALESCE(last_name, ''),
	COALESCE(role, '')`

func scanEmployee(row interface{ Scan(...any) error }) (*domain.Employee, error) {
	var e domain.Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresEmployeesRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *PostgresEmployeesRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
