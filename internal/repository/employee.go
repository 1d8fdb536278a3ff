package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/ems/internal/models"
	"github.com/jackc/pgx/v5"
)

// SaveEmployee inserts a new employee and returns the stored record with the identifier
// assigned by the database.
func (r *Repository) SaveEmployee(ctx context.Context, firstName, lastName, email string) (models.Employee, error) {
	var result models.Employee

	defer r.observeQuery("save_employee", time.Now())
	query := `
		INSERT INTO employees (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email;
	`

	err := r.db.QueryRow(ctx, query, firstName, lastName, email).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	return result, nil
}

// ListEmployees returns every stored employee ordered by identifier.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observeQuery("list_employees", time.Now())
	query := `SELECT id, first_name, last_name, email FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
// It returns models.ErrEmployeeNotFound when no row matches.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee

	defer r.observeQuery("get_employee_by_id", time.Now())
	query := `SELECT id, first_name, last_name, email FROM employees WHERE id=$1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, fmt.Errorf("failed to get employee by id %d: %w", identifier, models.ErrEmployeeNotFound)
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return result, nil
}

// UpdateEmployee replaces all mutable fields of an employee and returns the updated record.
// An unknown identifier leaves the table untouched and yields models.ErrEmployeeNotFound.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	firstName, lastName, email string,
) (models.Employee, error) {
	var result models.Employee

	defer r.observeQuery("update_employee", time.Now())
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, first_name, last_name, email;
	`

	err := r.db.QueryRow(ctx, query, identifier, firstName, lastName, email).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, models.ErrEmployeeNotFound)
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	return result, nil
}

// DeleteEmployee removes an employee by ID. It returns models.ErrEmployeeNotFound when
// nothing was deleted.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	defer r.observeQuery("delete_employee", time.Now())
	query := `DELETE FROM employees WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete employee %d: %w", identifier, models.ErrEmployeeNotFound)
	}

	return nil
}

// DeleteAllEmployees empties the employees table. The identity sequence keeps counting,
// so identifiers are never reused.
func (r *Repository) DeleteAllEmployees(ctx context.Context) error {
	defer r.observeQuery("delete_all_employees", time.Now())

	if _, err := r.db.Exec(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("failed to delete all employees: %w", err)
	}

	return nil
}
