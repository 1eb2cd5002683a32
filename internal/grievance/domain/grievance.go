// Package domain defines the grievance record and its workflow
package domain

import (
	"time"

	"github.com/lib/pq"

	analysis "github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// Grievance statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// ValidStatus reports whether s is a known workflow status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a grievance may move from one status to
// another. Resolved and rejected are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusResolved || to == StatusRejected
	case StatusInProgress:
		return to == StatusResolved || to == StatusRejected
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions
func IsTerminal(status string) bool {
	return status == StatusResolved || status == StatusRejected
}

// Grievance is a filed complaint with its analysis outcome
type Grievance struct {
	ID          string `json:"id" db:"id"`
	TrackingID  string `json:"tracking_id" db:"tracking_id"`
	UserID      string `json:"user_id" db:"user_id"`
	Subject     string `json:"subject" db:"subject"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
	State       string `json:"state" db:"state"`
	District    string `json:"district" db:"district"`
	Address     string `json:"address,omitempty" db:"address"`
	Status      string `json:"status" db:"status"`

	// Analysis outcome captured at submission time.
	Department       string         `json:"department" db:"department"`
	DepartmentCode   string         `json:"department_code" db:"department_code"`
	Tags             pq.StringArray `json:"tags" db:"tags"`
	SentimentScore   float64        `json:"sentiment_score" db:"sentiment_score"`
	Urgency          string         `json:"urgency" db:"urgency"`
	ConfidenceScore  float64        `json:"confidence_score" db:"confidence_score"`
	OriginalLanguage string         `json:"original_language" db:"original_language"`
	TranslatedText   *string        `json:"translated_text,omitempty" db:"translated_text"`
	SimilarIDs       pq.StringArray `json:"similar_grievance_ids,omitempty" db:"similar_ids"`
	AnalysisDegraded bool           `json:"analysis_degraded" db:"analysis_degraded"`

	AssignedTo *string   `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

// ToSummary converts a grievance into the analysis pipeline's corpus entry
func (g *Grievance) ToSummary() analysis.ComplaintSummary {
	return analysis.ComplaintSummary{
		ID:         g.ID,
		Text:       g.Description,
		Department: analysis.Department(g.Department),
		Status:     g.Status,
		CreatedAt:  g.CreatedAt,
	}
}

// StatusHistoryEntry records one workflow transition
type StatusHistoryEntry struct {
	ID          string    `json:"id" db:"id"`
	GrievanceID string    `json:"grievance_id" db:"grievance_id"`
	Status      string    `json:"status" db:"status"`
	Comments    string    `json:"comments,omitempty" db:"comments"`
	UpdatedBy   *string   `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Comment is a message on a grievance from the citizen or an official
type Comment struct {
	ID          string    `json:"id" db:"id"`
	GrievanceID string    `json:"grievance_id" db:"grievance_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserRole    string    `json:"user_role" db:"user_role"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Attachment is file metadata attached to a grievance. Only metadata is
// stored; the portal does not host file content.
type Attachment struct {
	ID          string    `json:"id" db:"id"`
	GrievanceID string    `json:"grievance_id" db:"grievance_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileType    string    `json:"file_type" db:"file_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	URL         string    `json:"url" db:"url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TrackingView is the citizen-facing tracking response
type TrackingView struct {
	Grievance *Grievance           `json:"grievance"`
	History   []StatusHistoryEntry `json:"status_history"`
	Comments  []Comment            `json:"comments"`
}
