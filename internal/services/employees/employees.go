package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/ems/internal/lib/logger/sl"
	"github.com/UnknownOlympus/ems/internal/metrics"
	"github.com/UnknownOlympus/ems/internal/models"
	"github.com/UnknownOlympus/ems/internal/repository"
)

// DeletedMessage confirms a successful DeleteByID.
const DeletedMessage = "Employee deleted successfully!"

const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusFailure  = "failure"
)

type Service struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewService(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Service {
	return &Service{log: log, repo: repo, metrics: metrics}
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// record counts the outcome of an operation. A missing employee is not a failure of the service.
func (s *Service) record(operation string, err error) {
	status := statusSuccess
	switch {
	case errors.Is(err, models.ErrEmployeeNotFound):
		status = statusNotFound
	case err != nil:
		status = statusFailure
	}

	s.metrics.EmployeeOperations.WithLabelValues(operation, status).Inc()
}

// Create stores a new employee. The identifier on the input is ignored; the stored
// record carries the one assigned by the repository.
func (s *Service) Create(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	created, err := s.repo.SaveEmployee(ctx, employee.FirstName, employee.LastName, employee.Email)
	s.record("create", err)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	log.InfoContext(ctx, "Employee created", "id", created.ID)

	return created, nil
}

// ListAll returns every stored employee.
func (s *Service) ListAll(ctx context.Context) ([]models.Employee, error) {
	const opn = "Employee.ListAll"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx)
	s.record("list", err)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list employees", sl.Err(err))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	log.DebugContext(ctx, "Employees listed", "count", len(employees))

	return employees, nil
}

// GetByID returns the employee with the given identifier or an error wrapping
// models.ErrEmployeeNotFound.
func (s *Service) GetByID(ctx context.Context, identifier int) (models.Employee, error) {
	const opn = "Employee.GetByID"
	log := s.initLogger(opn)

	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	s.record("get", err)
	if err != nil {
		s.logLookupError(ctx, log, identifier, err)
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, nil
}

// Update replaces first name, last name and email of an existing employee.
func (s *Service) Update(ctx context.Context, identifier int, fields models.Employee) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	updated, err := s.repo.UpdateEmployee(ctx, identifier, fields.FirstName, fields.LastName, fields.Email)
	s.record("update", err)
	if err != nil {
		s.logLookupError(ctx, log, identifier, err)
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}

	log.InfoContext(ctx, "Employee updated", "id", updated.ID)

	return updated, nil
}

// DeleteByID removes an employee and returns a confirmation message.
// Deleting an unknown identifier is reported as models.ErrEmployeeNotFound.
func (s *Service) DeleteByID(ctx context.Context, identifier int) (string, error) {
	const opn = "Employee.DeleteByID"
	log := s.initLogger(opn)

	err := s.repo.DeleteEmployee(ctx, identifier)
	s.record("delete", err)
	if err != nil {
		s.logLookupError(ctx, log, identifier, err)
		return "", fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	log.InfoContext(ctx, "Employee deleted", "id", identifier)

	return DeletedMessage, nil
}

func (s *Service) logLookupError(ctx context.Context, log *slog.Logger, identifier int, err error) {
	if errors.Is(err, models.ErrEmployeeNotFound) {
		log.DebugContext(ctx, "Employee not found", "id", identifier)
		return
	}

	log.ErrorContext(ctx, "Repository call failed", "id", identifier, sl.Err(err))
}
