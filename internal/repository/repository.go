package repository

import (
	"context"
	"time"

	"github.com/UnknownOlympus/ems/internal/metrics"
	"github.com/UnknownOlympus/ems/internal/models"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	SaveEmployee(ctx context.Context, firstName, lastName, email string) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, firstName, lastName, email string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
	DeleteAllEmployees(ctx context.Context) error
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

// observeQuery records how long a query of the given type took, counting from start.
func (r *Repository) observeQuery(queryType string, start time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}
