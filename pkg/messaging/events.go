package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Grievance lifecycle events
	EventGrievanceCreated           = "grievance.created"
	EventGrievanceStatusChanged     = "grievance.status.changed"
	EventGrievanceCommentAdded      = "grievance.comment.added"
	EventGrievanceAnalysisCompleted = "grievance.analysis.completed"
	EventGrievanceAssigned          = "grievance.assigned"

	// User events
	EventUserRegistered = "user.registered"
	EventUserUpdated    = "user.updated"
)

// Exchange names
const (
	ExchangeGrievanceEvents = "grievance.events"
	ExchangeUserEvents      = "user.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Grievance Events

// GrievanceCreatedEvent is published when a citizen files a grievance.
// It carries the analysis result fields so downstream consumers (analytics)
// never need to re-run the pipeline.
type GrievanceCreatedEvent struct {
	GrievanceID      string   `json:"grievance_id"`
	TrackingID       string   `json:"tracking_id"`
	UserID           string   `json:"user_id"`
	Department       string   `json:"department"`
	Tags             []string `json:"tags,omitempty"`
	Urgency          string   `json:"urgency"`
	SentimentScore   float64  `json:"sentiment_score"`
	OriginalLanguage string   `json:"original_language"`
	State            string   `json:"state,omitempty"`
	District         string   `json:"district,omitempty"`
}

// GrievanceStatusChangedEvent is published when an admin moves a grievance
// through the workflow.
type GrievanceStatusChangedEvent struct {
	GrievanceID   string `json:"grievance_id"`
	TrackingID    string `json:"tracking_id"`
	Department    string `json:"department"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	UpdatedBy     string `json:"updated_by"`
	UpdatedByRole string `json:"updated_by_role"`
	Comments      string `json:"comments,omitempty"`
}

// GrievanceCommentAddedEvent is published when a comment is added
type GrievanceCommentAddedEvent struct {
	GrievanceID string `json:"grievance_id"`
	CommentID   string `json:"comment_id"`
	UserID      string `json:"user_id"`
	UserRole    string `json:"user_role"`
}

// GrievanceAnalysisCompletedEvent is published after the analysis pipeline
// finishes, including degraded runs.
type GrievanceAnalysisCompletedEvent struct {
	GrievanceID       string  `json:"grievance_id"`
	DetectedLanguage  string  `json:"detected_language"`
	Department        string  `json:"department"`
	ConfidenceScore   float64 `json:"confidence_score"`
	SentimentScore    float64 `json:"sentiment_score"`
	Urgency           string  `json:"urgency"`
	SimilarCount      int     `json:"similar_count"`
	HighestSimilarity float64 `json:"highest_similarity"`
	Degraded          bool    `json:"degraded"`
	Error             string  `json:"error,omitempty"`
}

// GrievanceAssignedEvent is published when a grievance is assigned to an admin
type GrievanceAssignedEvent struct {
	GrievanceID string `json:"grievance_id"`
	AssignedTo  string `json:"assigned_to"`
	AssignedBy  string `json:"assigned_by"`
}

// User Events

// UserRegisteredEvent is published when a citizen registers
type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
}

// UserUpdatedEvent is published when a user profile changes
type UserUpdatedEvent struct {
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"` // Changed fields
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
