// Package service implements the grievance workflow: submission with
// complaint analysis, tracking, the status lifecycle and comments.
package service

import (
	"context"

	"github.com/lib/pq"

	analysisdomain "github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
	deptdomain "github.com/jansunwai/jansunwai-backend/internal/department/domain"
	"github.com/jansunwai/jansunwai-backend/internal/grievance/domain"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
	"github.com/jansunwai/jansunwai-backend/pkg/permissions"
)

// Store is the persistence surface the service depends on
type Store interface {
	Create(ctx context.Context, g *domain.Grievance, attachments []domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Grievance, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Grievance, error)
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Grievance, int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Grievance, error)
	UpdateStatus(ctx context.Context, id, status, comments, updatedBy string) error
	UpdateAssignment(ctx context.Context, id, assignedTo string) error
	GetStatusHistory(ctx context.Context, grievanceID string) ([]domain.StatusHistoryEntry, error)
	AddComment(ctx context.Context, c *domain.Comment) error
	ListComments(ctx context.Context, grievanceID string) ([]domain.Comment, error)
}

// Analyzer runs the complaint-analysis pipeline
type Analyzer interface {
	Analyze(ctx context.Context, text string, existing []analysisdomain.ComplaintSummary) *analysisdomain.Result
}

// EventPublisher publishes grievance lifecycle events
type EventPublisher interface {
	GrievanceCreated(ctx context.Context, event *messaging.GrievanceCreatedEvent)
	StatusChanged(ctx context.Context, event *messaging.GrievanceStatusChangedEvent)
	Assigned(ctx context.Context, event *messaging.GrievanceAssignedEvent)
	CommentAdded(ctx context.Context, event *messaging.GrievanceCommentAddedEvent)
	AnalysisCompleted(ctx context.Context, event *messaging.GrievanceAnalysisCompletedEvent)
}

// GrievanceService handles grievance workflow logic
type GrievanceService struct {
	store       Store
	analyzer    Analyzer
	events      EventPublisher
	corpusLimit int
	logger      *logger.Logger
}

// NewGrievanceService creates a new grievance service. corpusLimit caps
// how many recent grievances feed the similarity comparison.
func NewGrievanceService(store Store, analyzer Analyzer, events EventPublisher, corpusLimit int, log *logger.Logger) *GrievanceService {
	if corpusLimit <= 0 {
		corpusLimit = 100
	}
	return &GrievanceService{
		store:       store,
		analyzer:    analyzer,
		events:      events,
		corpusLimit: corpusLimit,
		logger:      log,
	}
}

// AttachmentInput is file metadata supplied at submission
type AttachmentInput struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileType string `json:"file_type" validate:"required,max=100"`
	FileSize int64  `json:"file_size" validate:"required,min=1"`
	URL      string `json:"url" validate:"required,url"`
}

// SubmitRequest is a grievance submission
type SubmitRequest struct {
	Subject     string            `json:"subject" validate:"required,min=5,max=200"`
	Description string            `json:"description" validate:"required,min=10,max=5000"`
	Category    string            `json:"category" validate:"required,max=100"`
	State       string            `json:"state" validate:"required,max=100"`
	District    string            `json:"district" validate:"required,max=100"`
	Address     string            `json:"address,omitempty" validate:"max=500"`
	Attachments []AttachmentInput `json:"attachments,omitempty" validate:"max=5,dive"`
}

// SubmitResponse returns the stored grievance together with what the
// analysis found, so the portal can show similar complaints immediately.
type SubmitResponse struct {
	Grievance *domain.Grievance                 `json:"grievance"`
	Similar   []analysisdomain.ComplaintSummary `json:"similar_complaints,omitempty"`
}

// UpdateStatusRequest moves a grievance through the workflow
type UpdateStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=pending in_progress resolved rejected"`
	Comments string `json:"comments,omitempty" validate:"max=1000"`
}

// AssignRequest hands a grievance to a specific admin
type AssignRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,uuid"`
}

// AddCommentRequest adds a comment to a grievance
type AddCommentRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// Submit analyzes and stores a new grievance. Analysis never blocks a
// submission: a degraded pipeline run still produces a routable grievance,
// flagged so admins can re-check the routing.
func (s *GrievanceService) Submit(ctx context.Context, userID string, req *SubmitRequest) (*SubmitResponse, error) {
	corpus := []analysisdomain.ComplaintSummary{}
	recent, err := s.store.ListRecent(ctx, s.corpusLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load similarity corpus, continuing without it")
	} else {
		for _, g := range recent {
			corpus = append(corpus, g.ToSummary())
		}
	}

	result := s.analyzer.Analyze(ctx, req.Description, corpus)

	g := &domain.Grievance{
		TrackingID:       domain.GenerateTrackingID(),
		UserID:           userID,
		Subject:          req.Subject,
		Description:      req.Description,
		Category:         req.Category,
		State:            req.State,
		District:         req.District,
		Address:          req.Address,
		Status:           domain.StatusPending,
		Department:       string(result.Classification.Department),
		DepartmentCode:   deptdomain.CodeForSlug(result.Classification.Department),
		Tags:             pq.StringArray(result.Classification.Tags),
		SentimentScore:   result.Sentiment.Score,
		Urgency:          string(result.Sentiment.Urgency),
		ConfidenceScore:  result.Classification.Confidence,
		OriginalLanguage: string(result.LanguageDetection.Language),
		AnalysisDegraded: result.Degraded(),
	}
	if result.Translation != nil {
		g.TranslatedText = &result.Translation.TranslatedText
	}
	for _, similar := range result.Similarity.SimilarComplaints {
		g.SimilarIDs = append(g.SimilarIDs, similar.ID)
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, domain.Attachment{
			FileName: a.FileName,
			FileType: a.FileType,
			FileSize: a.FileSize,
			URL:      a.URL,
		})
	}

	if err := s.store.Create(ctx, g, attachments); err != nil {
		return nil, err
	}

	s.logger.WithTrackingID(g.TrackingID).Info().
		Str("grievance_id", g.ID).
		Str("department", g.Department).
		Str("urgency", g.Urgency).
		Bool("degraded", g.AnalysisDegraded).
		Msg("grievance filed")

	s.events.GrievanceCreated(ctx, &messaging.GrievanceCreatedEvent{
		GrievanceID:      g.ID,
		TrackingID:       g.TrackingID,
		UserID:           g.UserID,
		Department:       g.Department,
		Tags:             []string(g.Tags),
		Urgency:          g.Urgency,
		SentimentScore:   g.SentimentScore,
		OriginalLanguage: g.OriginalLanguage,
		State:            g.State,
		District:         g.District,
	})
	s.events.AnalysisCompleted(ctx, &messaging.GrievanceAnalysisCompletedEvent{
		GrievanceID:       g.ID,
		DetectedLanguage:  string(result.LanguageDetection.Language),
		Department:        g.Department,
		ConfidenceScore:   g.ConfidenceScore,
		SentimentScore:    g.SentimentScore,
		Urgency:           g.Urgency,
		SimilarCount:      len(result.Similarity.SimilarComplaints),
		HighestSimilarity: result.Similarity.HighestScore,
		Degraded:          result.Degraded(),
		Error:             result.Error,
	})

	return &SubmitResponse{
		Grievance: g,
		Similar:   result.Similarity.SimilarComplaints,
	}, nil
}

// Track returns a grievance with its history and comments. Citizens can
// only track their own grievances; admins can track any.
func (s *GrievanceService) Track(ctx context.Context, trackingID, userID, role string) (*domain.TrackingView, error) {
	g, err := s.store.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanViewGrievance(role, userID, g.UserID) {
		return nil, errors.Forbidden("you can only track your own grievances")
	}

	history, err := s.store.GetStatusHistory(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TrackingView{
		Grievance: g,
		History:   history,
		Comments:  comments,
	}, nil
}

// ListMine returns the caller's grievances, most recent first
func (s *GrievanceService) ListMine(ctx context.Context, userID string, page, perPage int) ([]domain.Grievance, int64, error) {
	return s.store.ListByUser(ctx, userID, page, perPage)
}

// UpdateStatus moves a grievance through the workflow. Admin only; the
// transition must be legal (resolved and rejected are terminal).
func (s *GrievanceService) UpdateStatus(ctx context.Context, grievanceID string, req *UpdateStatusRequest, actorID, actorRole string) (*domain.Grievance, error) {
	if !permissions.CanUpdateStatus(actorRole) {
		return nil, errors.Forbidden("only department admins can update grievance status")
	}

	g, err := s.store.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, err
	}

	oldStatus := g.Status
	if !domain.CanTransition(oldStatus, req.Status) {
		return nil, errors.BadRequest("cannot change status from " + oldStatus + " to " + req.Status)
	}

	if err := s.store.UpdateStatus(ctx, g.ID, req.Status, req.Comments, actorID); err != nil {
		return nil, err
	}

	g.Status = req.Status

	s.logger.WithTrackingID(g.TrackingID).Info().
		Str("grievance_id", g.ID).
		Str("old_status", oldStatus).
		Str("new_status", g.Status).
		Str("updated_by", actorID).
		Msg("grievance status changed")

	s.events.StatusChanged(ctx, &messaging.GrievanceStatusChangedEvent{
		GrievanceID:   g.ID,
		TrackingID:    g.TrackingID,
		Department:    g.Department,
		OldStatus:     oldStatus,
		NewStatus:     g.Status,
		UpdatedBy:     actorID,
		UpdatedByRole: actorRole,
		Comments:      req.Comments,
	})

	return g, nil
}

// Assign hands a grievance to an admin for follow-up. Admin only; the
// grievance must not be in a terminal state.
func (s *GrievanceService) Assign(ctx context.Context, grievanceID string, req *AssignRequest, actorID, actorRole string) (*domain.Grievance, error) {
	if !permissions.CanUpdateStatus(actorRole) {
		return nil, errors.Forbidden("only department admins can assign grievances")
	}

	g, err := s.store.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, err
	}

	if domain.IsTerminal(g.Status) {
		return nil, errors.BadRequest("cannot assign a " + g.Status + " grievance")
	}

	if err := s.store.UpdateAssignment(ctx, g.ID, req.AssignedTo); err != nil {
		return nil, err
	}
	g.AssignedTo = &req.AssignedTo

	s.logger.WithTrackingID(g.TrackingID).Info().
		Str("grievance_id", g.ID).
		Str("assigned_to", req.AssignedTo).
		Str("assigned_by", actorID).
		Msg("grievance assigned")

	s.events.Assigned(ctx, &messaging.GrievanceAssignedEvent{
		GrievanceID: g.ID,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actorID,
	})

	return g, nil
}

// AddComment adds a comment from the owner or an admin
func (s *GrievanceService) AddComment(ctx context.Context, grievanceID string, req *AddCommentRequest, userID, role string) (*domain.Comment, error) {
	g, err := s.store.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, err
	}

	if !permissions.CanViewGrievance(role, userID, g.UserID) {
		return nil, errors.Forbidden("you can only comment on your own grievances")
	}

	comment := &domain.Comment{
		GrievanceID: g.ID,
		UserID:      userID,
		UserRole:    role,
		Message:     req.Message,
	}
	if err := s.store.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	s.events.CommentAdded(ctx, &messaging.GrievanceCommentAddedEvent{
		GrievanceID: g.ID,
		CommentID:   comment.ID,
		UserID:      userID,
		UserRole:    role,
	})

	return comment, nil
}
