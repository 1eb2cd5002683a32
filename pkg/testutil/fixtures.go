package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserFixture represents test user data
type UserFixture struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         string
	State        *string
	District     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GrievanceFixture represents test grievance data
type GrievanceFixture struct {
	ID               string
	TrackingID       string
	UserID           string
	Subject          string
	Description      string
	Category         string
	State            string
	District         string
	Status           string
	Department       string
	DepartmentCode   string
	Tags             []string
	SentimentScore   float64
	Urgency          string
	ConfidenceScore  float64
	OriginalLanguage string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FixtureFactory creates test fixtures with sensible defaults
type FixtureFactory struct {
	sequence int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{sequence: 0}
}

// nextSeq returns the next sequence number for unique values
func (f *FixtureFactory) nextSeq() int {
	f.sequence++
	return f.sequence
}

// User creates a citizen user fixture with defaults
func (f *FixtureFactory) User(opts ...func(*UserFixture)) UserFixture {
	seq := f.nextSeq()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	user := UserFixture{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("citizen%d@test.jansunwai.in", seq),
		PasswordHash: string(hash),
		Name:         fmt.Sprintf("Test Citizen %d", seq),
		Role:         "citizen",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	for _, opt := range opts {
		opt(&user)
	}

	return user
}

// WithEmail sets the user email
func WithEmail(email string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Email = email
	}
}

// WithName sets the user's display name
func WithName(name string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Name = name
	}
}

// WithRole sets the user role
func WithRole(role string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.Role = role
	}
}

// WithPassword sets the user password (hashed)
func WithPassword(password string) func(*UserFixture) {
	return func(u *UserFixture) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// WithLocation sets the user's state and district
func WithLocation(state, district string) func(*UserFixture) {
	return func(u *UserFixture) {
		u.State = &state
		u.District = &district
	}
}

// Inactive marks the user as deactivated
func Inactive() func(*UserFixture) {
	return func(u *UserFixture) {
		u.IsActive = false
	}
}

// Grievance creates a grievance fixture with defaults. The default complaint
// text classifies as a water department issue.
func (f *FixtureFactory) Grievance(userID string, opts ...func(*GrievanceFixture)) GrievanceFixture {
	seq := f.nextSeq()

	g := GrievanceFixture{
		ID:               uuid.New().String(),
		TrackingID:       fmt.Sprintf("GR%010d", seq),
		UserID:           userID,
		Subject:          fmt.Sprintf("Test grievance %d", seq),
		Description:      "There is a water supply problem and the pipe is broken",
		Category:         "infrastructure",
		State:            "Uttar Pradesh",
		District:         "Lucknow",
		Status:           "pending",
		Department:       "water",
		DepartmentCode:   "WATER",
		Tags:             []string{"water", "pipe"},
		SentimentScore:   -0.2,
		Urgency:          "medium",
		ConfidenceScore:  0.6,
		OriginalLanguage: "en",
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	for _, opt := range opts {
		opt(&g)
	}

	return g
}

// WithDescription sets the grievance complaint text
func WithDescription(text string) func(*GrievanceFixture) {
	return func(g *GrievanceFixture) {
		g.Description = text
	}
}

// WithGrievanceStatus sets the grievance status
func WithGrievanceStatus(status string) func(*GrievanceFixture) {
	return func(g *GrievanceFixture) {
		g.Status = status
	}
}

// WithGrievanceDepartment sets the classified department and code
func WithGrievanceDepartment(department, code string) func(*GrievanceFixture) {
	return func(g *GrievanceFixture) {
		g.Department = department
		g.DepartmentCode = code
	}
}

// WithUrgency sets the grievance urgency
func WithUrgency(urgency string) func(*GrievanceFixture) {
	return func(g *GrievanceFixture) {
		g.Urgency = urgency
	}
}

// WithCreatedAt sets the grievance creation time
func WithCreatedAt(t time.Time) func(*GrievanceFixture) {
	return func(g *GrievanceFixture) {
		g.CreatedAt = t
		g.UpdatedAt = t
	}
}

// DefaultTestUsers returns a set of standard test users covering each role
func DefaultTestUsers(factory *FixtureFactory) []UserFixture {
	return []UserFixture{
		factory.User(WithEmail("citizen@test.jansunwai.in"), WithName("Ramesh Kumar"), WithLocation("Uttar Pradesh", "Lucknow")),
		factory.User(WithEmail("water.admin@test.jansunwai.in"), WithName("Sunita Sharma"), WithRole("department_admin")),
		factory.User(WithEmail("super.admin@test.jansunwai.in"), WithName("Anil Verma"), WithRole("super_admin")),
		factory.User(WithEmail("inactive@test.jansunwai.in"), WithName("Vijay Singh"), Inactive()),
	}
}
