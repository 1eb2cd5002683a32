package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jansunwai/jansunwai-backend/internal/analytics/domain"
	"github.com/jansunwai/jansunwai-backend/pkg/database"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
)

// AnalyticsRepository maintains the daily counters. All increments are
// single-statement upserts so concurrent consumers stay correct without
// explicit locking.
type AnalyticsRepository struct {
	db *database.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *database.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// day truncates a timestamp to its UTC date
func day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// sentimentColumn maps a bucket to its counter column
var sentimentColumn = map[string]string{
	"positive": "sentiment_positive",
	"neutral":  "sentiment_neutral",
	"negative": "sentiment_negative",
}

var urgencyColumn = map[string]string{
	"low":    "urgency_low",
	"medium": "urgency_medium",
	"high":   "urgency_high",
}

var languageColumn = map[string]string{
	"en": "language_en",
	"hi": "language_hi",
	"ta": "language_ta",
}

// RecordCreated counts a newly filed grievance on its submission day
func (r *AnalyticsRepository) RecordCreated(ctx context.Context, at time.Time, sentimentScore float64, urgency, language, department string) error {
	columns := []string{"total_grievances", "pending_grievances"}
	if col, ok := sentimentColumn[domain.SentimentBucket(sentimentScore)]; ok {
		columns = append(columns, col)
	}
	if col, ok := urgencyColumn[urgency]; ok {
		columns = append(columns, col)
	}
	if col, ok := languageColumn[language]; ok {
		columns = append(columns, col)
	}

	if err := r.increment(ctx, day(at), columns); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analytics_department_daily (date, department, count, resolved)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (date, department) DO UPDATE SET count = analytics_department_daily.count + 1
	`, day(at), department)
	return err
}

// RecordStatusChange moves a grievance between the per-status counters
func (r *AnalyticsRepository) RecordStatusChange(ctx context.Context, at time.Time, oldStatus, newStatus, department string) error {
	_, okOld := statusColumn(oldStatus)
	newCol, okNew := statusColumn(newStatus)
	if !okOld || !okNew {
		return errors.BadRequest(fmt.Sprintf("unknown status transition %s -> %s", oldStatus, newStatus))
	}

	// Counters live on the day of the change, mirroring the daily
	// snapshot model: each day reflects activity, not current totals.
	d := day(at)
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO analytics_daily (date, %s) VALUES ($1, 1)
		ON CONFLICT (date) DO UPDATE SET %s = analytics_daily.%s + 1
	`, newCol, newCol, newCol), d)
	if err != nil {
		return err
	}

	if newStatus == "resolved" && department != "" {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO analytics_department_daily (date, department, count, resolved)
			VALUES ($1, $2, 0, 1)
			ON CONFLICT (date, department) DO UPDATE SET resolved = analytics_department_daily.resolved + 1
		`, d, department)
	}
	return err
}

// GetSnapshot returns one day's counters
func (r *AnalyticsRepository) GetSnapshot(ctx context.Context, date time.Time) (*domain.DailySnapshot, error) {
	var snap domain.DailySnapshot
	err := r.db.GetContext(ctx, &snap, `
		SELECT date, total_grievances, resolved_grievances, pending_grievances,
		       in_progress_grievances, rejected_grievances,
		       sentiment_positive, sentiment_neutral, sentiment_negative,
		       urgency_low, urgency_medium, urgency_high,
		       language_en, language_hi, language_ta
		FROM analytics_daily
		WHERE date = $1
	`, day(date))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("analytics snapshot")
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetDepartmentStats returns per-department counts for a day
func (r *AnalyticsRepository) GetDepartmentStats(ctx context.Context, date time.Time) ([]domain.DepartmentStat, error) {
	stats := []domain.DepartmentStat{}
	err := r.db.SelectContext(ctx, &stats, `
		SELECT date, department, count, resolved
		FROM analytics_department_daily
		WHERE date = $1
		ORDER BY count DESC, department ASC
	`, day(date))
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// increment bumps the named counters for one day in a single upsert
func (r *AnalyticsRepository) increment(ctx context.Context, date time.Time, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	insertCols := ""
	insertVals := ""
	updates := ""
	for i, col := range columns {
		if i > 0 {
			insertCols += ", "
			insertVals += ", "
			updates += ", "
		}
		insertCols += col
		insertVals += "1"
		updates += fmt.Sprintf("%s = analytics_daily.%s + 1", col, col)
	}
	query := fmt.Sprintf(`
		INSERT INTO analytics_daily (date, %s) VALUES ($1, %s)
		ON CONFLICT (date) DO UPDATE SET %s
	`, insertCols, insertVals, updates)
	_, err := r.db.ExecContext(ctx, query, date)
	return err
}

// statusColumn maps a workflow status to its daily counter column
func statusColumn(status string) (string, bool) {
	switch status {
	case "pending":
		return "pending_grievances", true
	case "in_progress":
		return "in_progress_grievances", true
	case "resolved":
		return "resolved_grievances", true
	case "rejected":
		return "rejected_grievances", true
	}
	return "", false
}
