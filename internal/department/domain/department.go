// Package domain defines the department registry model
package domain

import (
	"time"

	analysis "github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// Department is a government department grievances are routed to
type Department struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"` // classifier department value, e.g. "public_health"
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Seed is a department definition used to populate the registry
type Seed struct {
	Slug analysis.Department
	Code string
	Name string
}

// Seeds lists every department in classifier enumeration order
var Seeds = []Seed{
	{analysis.DepartmentWater, "WATER", "Water Department"},
	{analysis.DepartmentElectricity, "ELEC", "Electricity Department"},
	{analysis.DepartmentRoads, "ROADS", "Roads & Infrastructure"},
	{analysis.DepartmentSanitation, "SANIT", "Sanitation Department"},
	{analysis.DepartmentPublicHealth, "HEALTH", "Public Health Department"},
	{analysis.DepartmentEducation, "EDU", "Education Department"},
	{analysis.DepartmentTransport, "TRANS", "Transport Department"},
	{analysis.DepartmentHousing, "HOUSE", "Housing Department"},
	{analysis.DepartmentLand, "LAND", "Land & Revenue Department"},
	{analysis.DepartmentGeneral, "GEN", "General Administration"},
}

// CodeForSlug maps a classifier department to its registry code, falling
// back to general administration for unknown values.
func CodeForSlug(slug analysis.Department) string {
	for _, s := range Seeds {
		if s.Slug == slug {
			return s.Code
		}
	}
	return "GEN"
}
