package testutil

import (
	"context"
	"testing"

	"github.com/lib/pq"
)

// InsertUser persists a user fixture directly, bypassing the repository.
// Use it to satisfy foreign keys when the user itself is not under test.
func (s *IntegrationSuite) InsertUser(t *testing.T, ctx context.Context, u UserFixture) {
	t.Helper()

	_, err := s.RawDB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, phone, role, state, district, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Phone, u.Role, u.State, u.District, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to insert user fixture: %v", err)
	}
}

// InsertGrievance persists a grievance fixture directly, bypassing the
// repository and the analysis pipeline.
func (s *IntegrationSuite) InsertGrievance(t *testing.T, ctx context.Context, g GrievanceFixture) {
	t.Helper()

	_, err := s.RawDB.ExecContext(ctx, `
		INSERT INTO grievances (
			id, tracking_id, user_id, subject, description, category, state, district,
			status, department, department_code, tags, sentiment_score, urgency,
			confidence_score, original_language, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, g.ID, g.TrackingID, g.UserID, g.Subject, g.Description, g.Category, g.State, g.District,
		g.Status, g.Department, g.DepartmentCode, pq.Array(g.Tags), g.SentimentScore, g.Urgency,
		g.ConfidenceScore, g.OriginalLanguage, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to insert grievance fixture: %v", err)
	}
}
