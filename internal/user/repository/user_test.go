package repository_test

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansunwai/jansunwai-backend/internal/user/domain"
	"github.com/jansunwai/jansunwai-backend/internal/user/repository"
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

func TestUserRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)

	state := "Uttar Pradesh"
	district := "Varanasi"
	user := &domain.User{
		Email:        "ramesh@example.in",
		PasswordHash: "$2a$04$notachecksum",
		Name:         "Ramesh Kumar",
		Role:         "citizen",
		State:        &state,
		District:     &district,
		IsActive:     true,
	}

	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ramesh@example.in", found.Email)
	assert.Equal(t, "Ramesh Kumar", found.Name)
	assert.Equal(t, "citizen", found.Role)
	require.NotNil(t, found.State)
	assert.Equal(t, "Uttar Pradesh", *found.State)
	assert.Nil(t, found.LastLoginAt)
}

func TestUserRepository_GetByEmailCaseInsensitive(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)
	fixture := suite.Fixtures.User(testutil.WithEmail("Sunita.Sharma@example.in"))
	suite.InsertUser(t, ctx, fixture)

	found, err := repo.GetByEmail(ctx, "sunita.sharma@EXAMPLE.IN")
	require.NoError(t, err)
	assert.Equal(t, fixture.ID, found.ID)
}

func TestUserRepository_DuplicateEmailConflict(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)
	fixture := suite.Fixtures.User(testutil.WithEmail("taken@example.in"))
	suite.InsertUser(t, ctx, fixture)

	err := repo.Create(ctx, &domain.User{
		Email:        "taken@example.in",
		PasswordHash: "hash",
		Name:         "Second User",
		Role:         "citizen",
		IsActive:     true,
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)

	found, err := repo.GetByID(ctx, "9f1c1f6e-0000-4000-8000-000000000000")
	assert.Nil(t, found)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)
	fixture := suite.Fixtures.User()
	suite.InsertUser(t, ctx, fixture)

	phone := "9876543210"
	user := &domain.User{
		ID:    fixture.ID,
		Name:  "Renamed Citizen",
		Phone: &phone,
	}
	err := repo.UpdateProfile(ctx, user)
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, fixture.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Citizen", found.Name)
	require.NotNil(t, found.Phone)
	assert.Equal(t, "9876543210", *found.Phone)
	assert.Nil(t, found.State)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewUserRepository(suite.DB)
	fixture := suite.Fixtures.User()
	suite.InsertUser(t, ctx, fixture)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, fixture.ID, at))

	found, err := repo.GetByID(ctx, fixture.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
}
