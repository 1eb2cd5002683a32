package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jansunwai/jansunwai-backend/internal/grievance/domain"
	"github.com/jansunwai/jansunwai-backend/pkg/database"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
)

const grievanceColumns = `
	id, tracking_id, user_id, subject, description, category, state, district, address,
	status, department, department_code, tags, sentiment_score, urgency, confidence_score,
	original_language, translated_text, similar_ids, analysis_degraded,
	assigned_to, created_at, updated_at, resolved_at
`

// GrievanceRepository handles grievance persistence
type GrievanceRepository struct {
	db *database.DB
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(db *database.DB) *GrievanceRepository {
	return &GrievanceRepository{db: db}
}

// Create stores a grievance together with its initial status history entry
// and attachment metadata in one transaction.
func (r *GrievanceRepository) Create(ctx context.Context, g *domain.Grievance, attachments []domain.Attachment) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO grievances (
				id, tracking_id, user_id, subject, description, category, state, district, address,
				status, department, department_code, tags, sentiment_score, urgency, confidence_score,
				original_language, translated_text, similar_ids, analysis_degraded
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9,
				$10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20
			)
			RETURNING created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, query,
			g.ID, g.TrackingID, g.UserID, g.Subject, g.Description, g.Category,
			g.State, g.District, g.Address,
			g.Status, g.Department, g.DepartmentCode, g.Tags, g.SentimentScore,
			g.Urgency, g.ConfidenceScore,
			g.OriginalLanguage, g.TranslatedText, g.SimilarIDs, g.AnalysisDegraded,
		).Scan(&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO grievance_status_history (id, grievance_id, status, comments)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), g.ID, g.Status, "Grievance filed")
		if err != nil {
			return err
		}

		for i := range attachments {
			attachments[i].ID = uuid.New().String()
			attachments[i].GrievanceID = g.ID
			_, err = tx.ExecContext(ctx, `
				INSERT INTO grievance_attachments (id, grievance_id, file_name, file_type, file_size, url)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, attachments[i].ID, g.ID, attachments[i].FileName, attachments[i].FileType,
				attachments[i].FileSize, attachments[i].URL)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetByID gets a grievance by ID
func (r *GrievanceRepository) GetByID(ctx context.Context, id string) (*domain.Grievance, error) {
	var g domain.Grievance
	err := r.db.GetContext(ctx, &g, `SELECT `+grievanceColumns+` FROM grievances WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundWithKey("grievance")
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByTrackingID gets a grievance by its citizen-facing tracking ID
func (r *GrievanceRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Grievance, error) {
	var g domain.Grievance
	err := r.db.GetContext(ctx, &g, `SELECT `+grievanceColumns+` FROM grievances WHERE tracking_id = $1`, trackingID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundWithKey("grievance")
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByUser returns a user's grievances, most recent first
func (r *GrievanceRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]domain.Grievance, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM grievances WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	grievances := []domain.Grievance{}
	query := `
		SELECT ` + grievanceColumns + `
		FROM grievances
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &grievances, query, userID, perPage, (page-1)*perPage); err != nil {
		return nil, 0, err
	}
	return grievances, total, nil
}

// ListRecent returns the most recent grievances across the portal, used as
// the similarity corpus at submission time.
func (r *GrievanceRepository) ListRecent(ctx context.Context, limit int) ([]domain.Grievance, error) {
	grievances := []domain.Grievance{}
	query := `
		SELECT ` + grievanceColumns + `
		FROM grievances
		ORDER BY created_at DESC
		LIMIT $1
	`
	if err := r.db.SelectContext(ctx, &grievances, query, limit); err != nil {
		return nil, err
	}
	return grievances, nil
}

// UpdateStatus moves a grievance to a new status and appends a history
// entry in one transaction.
func (r *GrievanceRepository) UpdateStatus(ctx context.Context, id, status, comments string, updatedBy string) error {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		var query string
		if status == domain.StatusResolved {
			query = `UPDATE grievances SET status = $2, updated_at = NOW(), resolved_at = NOW() WHERE id = $1`
		} else {
			query = `UPDATE grievances SET status = $2, updated_at = NOW() WHERE id = $1`
		}
		res, err := tx.ExecContext(ctx, query, id, status)
		if err != nil {
			return err
		}
		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			return errors.NotFoundWithKey("grievance")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO grievance_status_history (id, grievance_id, status, comments, updated_by)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), id, status, comments, updatedBy)
		return err
	})
	if err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// UpdateAssignment records which admin a grievance is assigned to
func (r *GrievanceRepository) UpdateAssignment(ctx context.Context, id, assignedTo string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE grievances SET assigned_to = $2, updated_at = NOW() WHERE id = $1
	`, id, assignedTo)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return errors.NotFoundWithKey("grievance")
	}
	return nil
}

// GetStatusHistory returns the workflow history of a grievance, oldest first
func (r *GrievanceRepository) GetStatusHistory(ctx context.Context, grievanceID string) ([]domain.StatusHistoryEntry, error) {
	history := []domain.StatusHistoryEntry{}
	query := `
		SELECT id, grievance_id, status, comments, updated_by, created_at
		FROM grievance_status_history
		WHERE grievance_id = $1
		ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &history, query, grievanceID); err != nil {
		return nil, err
	}
	return history, nil
}

// AddComment stores a comment on a grievance
func (r *GrievanceRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO grievance_comments (id, grievance_id, user_id, user_role, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.ID, c.GrievanceID, c.UserID, c.UserRole, c.Message).Scan(&c.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// ListComments returns a grievance's comments, oldest first
func (r *GrievanceRepository) ListComments(ctx context.Context, grievanceID string) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	query := `
		SELECT id, grievance_id, user_id, user_role, message, created_at
		FROM grievance_comments
		WHERE grievance_id = $1
		ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &comments, query, grievanceID); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListAttachments returns a grievance's attachment metadata
func (r *GrievanceRepository) ListAttachments(ctx context.Context, grievanceID string) ([]domain.Attachment, error) {
	attachments := []domain.Attachment{}
	query := `
		SELECT id, grievance_id, file_name, file_type, file_size, url, created_at
		FROM grievance_attachments
		WHERE grievance_id = $1
		ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &attachments, query, grievanceID); err != nil {
		return nil, err
	}
	return attachments, nil
}
