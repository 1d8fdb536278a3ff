package employees_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/UnknownOlympus/ems/internal/metrics"
	"github.com/UnknownOlympus/ems/internal/models"
	"github.com/UnknownOlympus/ems/internal/services/employees"
	mocks "github.com/UnknownOlympus/ems/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
)

func newTestService(t *testing.T) (*employees.Service, *mocks.EmployeeRepoIface, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockRepo := mocks.NewEmployeeRepoIface(t)
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return employees.NewService(logger, mockRepo, testMetrics), mockRepo, testMetrics
}

func TestNewService(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	mockRepo := new(mocks.EmployeeRepoIface)

	s := employees.NewService(logger, mockRepo, metrics.NewMetrics(prometheus.NewRegistry()))

	assert.NotNil(t, s)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("should return the stored employee with its id", func(t *testing.T) {
		svc, mockRepo, testMetrics := newTestService(t)
		email := randomail.GenerateRandomEmail()
		input := models.NewEmployee("john", "doe", email)
		stored := models.Employee{ID: 10, FirstName: "john", LastName: "doe", Email: email}

		mockRepo.On("SaveEmployee", mock.Anything, "john", "doe", email).Return(stored, nil).Once()

		created, err := svc.Create(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, stored, created)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOperations.WithLabelValues("create", "success")), 0)
	})

	t.Run("should ignore id supplied by the caller", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)
		input := models.Employee{ID: 999, FirstName: "mary", LastName: "hope", Email: "maryhope@gmail.com"}
		stored := models.Employee{ID: 11, FirstName: "mary", LastName: "hope", Email: "maryhope@gmail.com"}

		mockRepo.On("SaveEmployee", mock.Anything, "mary", "hope", "maryhope@gmail.com").Return(stored, nil).Once()

		created, err := svc.Create(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)
	})

	t.Run("should return error when repository fails", func(t *testing.T) {
		svc, mockRepo, testMetrics := newTestService(t)

		mockRepo.On("SaveEmployee", mock.Anything, "john", "doe", "johndoe@gmail.com").
			Return(models.Employee{}, assert.AnError).
			Once()

		_, err := svc.Create(context.Background(), models.NewEmployee("john", "doe", "johndoe@gmail.com"))

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to create employee")
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOperations.WithLabelValues("create", "failure")), 0)
	})
}

func TestListAll(t *testing.T) {
	t.Parallel()

	t.Run("should return every employee", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)
		stored := []models.Employee{
			{ID: 1, FirstName: "john", LastName: "doe", Email: "johndoe@gmail.com"},
			{ID: 2, FirstName: "mary", LastName: "hope", Email: "maryhope@gmail.com"},
		}

		mockRepo.On("ListEmployees", mock.Anything).Return(stored, nil).Once()

		list, err := svc.ListAll(context.Background())

		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("should return empty slice instead of nil", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("ListEmployees", mock.Anything).Return(nil, nil).Once()

		list, err := svc.ListAll(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("should return error when repository fails", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("ListEmployees", mock.Anything).Return(nil, assert.AnError).Once()

		list, err := svc.ListAll(context.Background())

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, list)
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	t.Run("should return the employee", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)
		stored := models.Employee{ID: 5, FirstName: "john", LastName: "doe", Email: "johndoe@gmail.com"}

		mockRepo.On("GetEmployeeByID", mock.Anything, 5).Return(stored, nil).Once()

		employee, err := svc.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, stored, employee)
	})

	t.Run("should signal not found", func(t *testing.T) {
		svc, mockRepo, testMetrics := newTestService(t)

		mockRepo.On("GetEmployeeByID", mock.Anything, 5).Return(models.Employee{}, models.ErrEmployeeNotFound).Once()

		_, err := svc.GetByID(context.Background(), 5)

		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOperations.WithLabelValues("get", "not_found")), 0)
	})

	t.Run("should return repository error", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("GetEmployeeByID", mock.Anything, 5).Return(models.Employee{}, assert.AnError).Once()

		_, err := svc.GetByID(context.Background(), 5)

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, models.ErrEmployeeNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("should replace all fields and keep id", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)
		fields := models.NewEmployee("steve", "jobs", "stevejobs@gmail.com")
		updated := models.Employee{ID: 3, FirstName: "steve", LastName: "jobs", Email: "stevejobs@gmail.com"}

		mockRepo.On("UpdateEmployee", mock.Anything, 3, "steve", "jobs", "stevejobs@gmail.com").Return(updated, nil).Once()

		result, err := svc.Update(context.Background(), 3, fields)

		require.NoError(t, err)
		assert.Equal(t, updated, result)
	})

	t.Run("should signal not found", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("UpdateEmployee", mock.Anything, 3, "steve", "jobs", "stevejobs@gmail.com").
			Return(models.Employee{}, models.ErrEmployeeNotFound).
			Once()

		_, err := svc.Update(context.Background(), 3, models.NewEmployee("steve", "jobs", "stevejobs@gmail.com"))

		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
	})
}

func TestDeleteByID(t *testing.T) {
	t.Parallel()

	t.Run("should confirm deletion", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("DeleteEmployee", mock.Anything, 4).Return(nil).Once()

		message, err := svc.DeleteByID(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, employees.DeletedMessage, message)
	})

	t.Run("should signal not found for unknown id", func(t *testing.T) {
		svc, mockRepo, testMetrics := newTestService(t)

		mockRepo.On("DeleteEmployee", mock.Anything, 4).Return(models.ErrEmployeeNotFound).Once()

		message, err := svc.DeleteByID(context.Background(), 4)

		require.ErrorIs(t, err, models.ErrEmployeeNotFound)
		assert.Empty(t, message)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.EmployeeOperations.WithLabelValues("delete", "not_found")), 0)
	})

	t.Run("should return repository error", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.On("DeleteEmployee", mock.Anything, 4).Return(assert.AnError).Once()

		_, err := svc.DeleteByID(context.Background(), 4)

		require.ErrorIs(t, err, assert.AnError)
	})
}
