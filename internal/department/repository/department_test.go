package repository_test

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansunwai/jansunwai-backend/internal/department/domain"
	"github.com/jansunwai/jansunwai-backend/internal/department/repository"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
	"github.com/jansunwai/jansunwai-backend/pkg/testutil"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	flag.Parse()
	ctx := context.Background()

	if !testing.Short() {
		var err error
		suite, err = testutil.NewIntegrationSuite(ctx)
		if err != nil {
			log.Fatalf("failed to create integration suite: %v", err)
		}
		defer testutil.TerminateContainer(ctx)
	}

	os.Exit(m.Run())
}

func TestDepartmentRepository_SeedIsIdempotent(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewDepartmentRepository(suite.DB)

	require.NoError(t, repo.Seed(ctx))
	require.NoError(t, repo.Seed(ctx))

	departments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, departments, len(domain.Seeds))
}

func TestDepartmentRepository_GetByCode(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewDepartmentRepository(suite.DB)
	require.NoError(t, repo.Seed(ctx))

	dept, err := repo.GetByCode(ctx, "WATER")
	require.NoError(t, err)
	assert.Equal(t, "Water Department", dept.Name)
	assert.Equal(t, "water", dept.Slug)

	_, err = repo.GetByCode(ctx, "NOPE")
	require.Error(t, err)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
