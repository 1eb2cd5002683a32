package database

import (
	"context"
	"fmt"
)

// Migrations returns the portal schema DDL in apply order. Statements are
// idempotent so startup can run them unconditionally.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			phone VARCHAR(15),
			role VARCHAR(50) NOT NULL DEFAULT 'citizen',
			state VARCHAR(100),
			district VARCHAR(100),
			department_code VARCHAR(10),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login_at TIMESTAMPTZ,
			CONSTRAINT users_email_key UNIQUE (email),
			CONSTRAINT users_role_valid CHECK (role IN ('citizen', 'department_admin', 'super_admin'))
		)`,

		`CREATE TABLE IF NOT EXISTS departments (
			id UUID PRIMARY KEY,
			code VARCHAR(10) NOT NULL,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(50) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT departments_code_key UNIQUE (code),
			CONSTRAINT departments_slug_key UNIQUE (slug)
		)`,

		`CREATE TABLE IF NOT EXISTS grievances (
			id UUID PRIMARY KEY,
			tracking_id VARCHAR(12) NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id),
			subject VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(100) NOT NULL,
			state VARCHAR(100) NOT NULL,
			district VARCHAR(100) NOT NULL,
			address VARCHAR(500) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			department VARCHAR(50) NOT NULL,
			department_code VARCHAR(10) NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			urgency VARCHAR(10) NOT NULL DEFAULT 'low',
			confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			original_language VARCHAR(5) NOT NULL DEFAULT 'en',
			translated_text TEXT,
			similar_ids TEXT[] NOT NULL DEFAULT '{}',
			analysis_degraded BOOLEAN NOT NULL DEFAULT false,
			assigned_to UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			resolved_at TIMESTAMPTZ,
			CONSTRAINT grievances_tracking_id_key UNIQUE (tracking_id),
			CONSTRAINT grievances_status_valid CHECK (status IN ('pending', 'in_progress', 'resolved', 'rejected')),
			CONSTRAINT grievances_urgency_valid CHECK (urgency IN ('low', 'medium', 'high')),
			CONSTRAINT grievances_language_valid CHECK (original_language IN ('en', 'hi', 'ta'))
		)`,

		`CREATE INDEX IF NOT EXISTS grievances_user_id_idx ON grievances (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS grievances_created_at_idx ON grievances (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS grievances_department_idx ON grievances (department_code, status)`,

		`CREATE TABLE IF NOT EXISTS grievance_status_history (
			id UUID PRIMARY KEY,
			grievance_id UUID NOT NULL REFERENCES grievances(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL,
			comments VARCHAR(1000) NOT NULL DEFAULT '',
			updated_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT status_history_status_valid CHECK (status IN ('pending', 'in_progress', 'resolved', 'rejected'))
		)`,

		`CREATE INDEX IF NOT EXISTS status_history_grievance_idx ON grievance_status_history (grievance_id, created_at ASC)`,

		`CREATE TABLE IF NOT EXISTS grievance_comments (
			id UUID PRIMARY KEY,
			grievance_id UUID NOT NULL REFERENCES grievances(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			user_role VARCHAR(50) NOT NULL,
			message VARCHAR(1000) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS comments_grievance_idx ON grievance_comments (grievance_id, created_at ASC)`,

		`CREATE TABLE IF NOT EXISTS grievance_attachments (
			id UUID PRIMARY KEY,
			grievance_id UUID NOT NULL REFERENCES grievances(id) ON DELETE CASCADE,
			file_name VARCHAR(255) NOT NULL,
			file_type VARCHAR(100) NOT NULL,
			file_size BIGINT NOT NULL,
			url VARCHAR(1000) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS analytics_daily (
			date DATE PRIMARY KEY,
			total_grievances INT NOT NULL DEFAULT 0,
			resolved_grievances INT NOT NULL DEFAULT 0,
			pending_grievances INT NOT NULL DEFAULT 0,
			in_progress_grievances INT NOT NULL DEFAULT 0,
			rejected_grievances INT NOT NULL DEFAULT 0,
			sentiment_positive INT NOT NULL DEFAULT 0,
			sentiment_neutral INT NOT NULL DEFAULT 0,
			sentiment_negative INT NOT NULL DEFAULT 0,
			urgency_low INT NOT NULL DEFAULT 0,
			urgency_medium INT NOT NULL DEFAULT 0,
			urgency_high INT NOT NULL DEFAULT 0,
			language_en INT NOT NULL DEFAULT 0,
			language_hi INT NOT NULL DEFAULT 0,
			language_ta INT NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS analytics_department_daily (
			date DATE NOT NULL,
			department VARCHAR(50) NOT NULL,
			count INT NOT NULL DEFAULT 0,
			resolved INT NOT NULL DEFAULT 0,
			PRIMARY KEY (date, department)
		)`,
	}
}

// Migrate applies the portal schema
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range Migrations() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
