package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jansunwai/jansunwai-backend/internal/department/domain"
	"github.com/jansunwai/jansunwai-backend/pkg/database"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
)

// DepartmentRepository handles department persistence
type DepartmentRepository struct {
	db *database.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *database.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns all active departments in seed order
func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	departments := []domain.Department{}
	query := `
		SELECT id, code, name, slug, is_active, created_at, updated_at
		FROM departments
		WHERE is_active = true
		ORDER BY created_at ASC, code ASC
	`
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, err
	}
	return departments, nil
}

// GetByCode returns a department by its short code
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*domain.Department, error) {
	var dept domain.Department
	query := `
		SELECT id, code, name, slug, is_active, created_at, updated_at
		FROM departments
		WHERE code = $1
	`
	err := r.db.GetContext(ctx, &dept, query, code)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundWithKey("department")
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// Seed inserts any missing departments from the built-in registry.
// Existing rows are left untouched, so renames must be done by migration.
func (r *DepartmentRepository) Seed(ctx context.Context) error {
	query := `
		INSERT INTO departments (id, code, name, slug, is_active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (code) DO NOTHING
	`
	for _, seed := range domain.Seeds {
		if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), seed.Code, seed.Name, string(seed.Slug)); err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
			return err
		}
	}
	return nil
}
