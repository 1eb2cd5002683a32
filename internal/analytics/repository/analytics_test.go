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

	"github.com/jansunwai/jansunwai-backend/internal/analytics/repository"
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

func TestAnalyticsRepository_RecordCreated(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewAnalyticsRepository(suite.DB)
	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	require.NoError(t, repo.RecordCreated(ctx, at, -0.4, "high", "hi", "water"))
	require.NoError(t, repo.RecordCreated(ctx, at, 0.0, "low", "en", "water"))
	require.NoError(t, repo.RecordCreated(ctx, at, -0.1, "medium", "ta", "roads"))

	snap, err := repo.GetSnapshot(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalGrievances)
	assert.Equal(t, 3, snap.PendingGrievances)
	assert.Equal(t, 2, snap.SentimentNegative)
	assert.Equal(t, 1, snap.SentimentNeutral)
	assert.Equal(t, 1, snap.UrgencyHigh)
	assert.Equal(t, 1, snap.UrgencyMedium)
	assert.Equal(t, 1, snap.UrgencyLow)
	assert.Equal(t, 1, snap.LanguageEn)
	assert.Equal(t, 1, snap.LanguageHi)
	assert.Equal(t, 1, snap.LanguageTa)

	stats, err := repo.GetDepartmentStats(ctx, at)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	// Highest count first
	assert.Equal(t, "water", stats[0].Department)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "roads", stats[1].Department)
	assert.Equal(t, 1, stats[1].Count)
}

func TestAnalyticsRepository_RecordStatusChange(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewAnalyticsRepository(suite.DB)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordCreated(ctx, at, -0.4, "high", "en", "water"))
	require.NoError(t, repo.RecordStatusChange(ctx, at, "pending", "in_progress", "water"))
	require.NoError(t, repo.RecordStatusChange(ctx, at, "in_progress", "resolved", "water"))

	snap, err := repo.GetSnapshot(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.InProgressGrievances)
	assert.Equal(t, 1, snap.ResolvedGrievances)

	stats, err := repo.GetDepartmentStats(ctx, at)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Resolved)
}

func TestAnalyticsRepository_RecordStatusChangeUnknownStatus(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewAnalyticsRepository(suite.DB)
	err := repo.RecordStatusChange(ctx, time.Now(), "pending", "escalated", "water")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BAD_REQUEST", appErr.Code)

	err = repo.RecordStatusChange(ctx, time.Now(), "escalated", "resolved", "water")
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
}

func TestAnalyticsRepository_SnapshotNotFound(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := context.Background()
	suite.ResetData(t, ctx)

	repo := repository.NewAnalyticsRepository(suite.DB)
	snap, err := repo.GetSnapshot(ctx, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, snap)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
