//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/UnknownOlympus/ems/internal/metrics"
	"github.com/UnknownOlympus/ems/internal/models"
	"github.com/UnknownOlympus/ems/internal/repository"
	"github.com/UnknownOlympus/ems/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
)

var testDB *testutil.Postgres

func TestMain(m *testing.M) {
	var err error

	testDB, err = testutil.StartPostgres(context.Background())
	if err != nil {
		log.Fatalf("failed to start test database: %v", err)
	}

	code := m.Run()

	if err = testDB.Stop(); err != nil {
		log.Printf("failed to stop test database: %v", err)
	}
	os.Exit(code)
}

func newIntegrationRepository(t *testing.T) repository.EmployeeRepoIface {
	t.Helper()

	repo := repository.NewEmployeeRepository(testDB.Pool, metrics.NewMetrics(prometheus.NewRegistry()))
	require.NoError(t, repo.DeleteAllEmployees(context.Background()))

	return repo
}

func TestIntegrationEmployeeRepository_SaveAndGet(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	saved, err := repo.SaveEmployee(ctx, "john", "doe", "johndoe@gmail.com")
	require.NoError(t, err)
	assert.Positive(t, saved.ID)

	fetched, err := repo.GetEmployeeByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, fetched)
}

func TestIntegrationEmployeeRepository_ListReturnsEveryRow(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	const total = 5
	for range total {
		_, err := repo.SaveEmployee(ctx, "mary", "hope", randomail.GenerateRandomEmail())
		require.NoError(t, err)
	}

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, total)
}

func TestIntegrationEmployeeRepository_UpdateKeepsID(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	saved, err := repo.SaveEmployee(ctx, "john", "doe", "johndoe@gmail.com")
	require.NoError(t, err)

	updated, err := repo.UpdateEmployee(ctx, saved.ID, "steve", "jobs", "stevejobs@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: saved.ID, FirstName: "steve", LastName: "jobs", Email: "stevejobs@gmail.com"}, updated)
}

func TestIntegrationEmployeeRepository_UnknownID(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	saved, err := repo.SaveEmployee(ctx, "john", "doe", "johndoe@gmail.com")
	require.NoError(t, err)
	unknownID := saved.ID + 1

	_, err = repo.GetEmployeeByID(ctx, unknownID)
	require.ErrorIs(t, err, models.ErrEmployeeNotFound)

	_, err = repo.UpdateEmployee(ctx, unknownID, "steve", "jobs", "stevejobs@gmail.com")
	require.ErrorIs(t, err, models.ErrEmployeeNotFound)

	err = repo.DeleteEmployee(ctx, unknownID)
	require.ErrorIs(t, err, models.ErrEmployeeNotFound)

	untouched, err := repo.GetEmployeeByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, untouched)
}

func TestIntegrationEmployeeRepository_Delete(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	saved, err := repo.SaveEmployee(ctx, "steve", "jobs", "stevejobs@gmail.com")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEmployee(ctx, saved.ID))

	_, err = repo.GetEmployeeByID(ctx, saved.ID)
	require.ErrorIs(t, err, models.ErrEmployeeNotFound)
}

func TestIntegrationEmployeeRepository_DeleteAllDoesNotReuseIDs(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	first, err := repo.SaveEmployee(ctx, "john", "doe", "johndoe@gmail.com")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteAllEmployees(ctx))

	second, err := repo.SaveEmployee(ctx, "john", "doe", "johndoe@gmail.com")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}
