// Package domain defines the daily analytics counters
package domain

import "time"

// DailySnapshot aggregates one day of grievance activity
type DailySnapshot struct {
	Date                 time.Time `json:"date" db:"date"`
	TotalGrievances      int       `json:"total_grievances" db:"total_grievances"`
	ResolvedGrievances   int       `json:"resolved_grievances" db:"resolved_grievances"`
	PendingGrievances    int       `json:"pending_grievances" db:"pending_grievances"`
	InProgressGrievances int       `json:"in_progress_grievances" db:"in_progress_grievances"`
	RejectedGrievances   int       `json:"rejected_grievances" db:"rejected_grievances"`

	SentimentPositive int `json:"sentiment_positive" db:"sentiment_positive"`
	SentimentNeutral  int `json:"sentiment_neutral" db:"sentiment_neutral"`
	SentimentNegative int `json:"sentiment_negative" db:"sentiment_negative"`

	UrgencyLow    int `json:"urgency_low" db:"urgency_low"`
	UrgencyMedium int `json:"urgency_medium" db:"urgency_medium"`
	UrgencyHigh   int `json:"urgency_high" db:"urgency_high"`

	LanguageEn int `json:"language_en" db:"language_en"`
	LanguageHi int `json:"language_hi" db:"language_hi"`
	LanguageTa int `json:"language_ta" db:"language_ta"`
}

// DepartmentStat counts one department's grievances for a day
type DepartmentStat struct {
	Date       time.Time `json:"date" db:"date"`
	Department string    `json:"department" db:"department"`
	Count      int       `json:"count" db:"count"`
	Resolved   int       `json:"resolved" db:"resolved"`
}

// SentimentBucket classifies a score into the snapshot's sentiment columns
func SentimentBucket(score float64) string {
	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	}
	return "neutral"
}
