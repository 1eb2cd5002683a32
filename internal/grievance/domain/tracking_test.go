package domain_test

import (
	"regexp"
	"testing"

	"github.com/jansunwai/jansunwai-backend/internal/grievance/domain"
)

func TestGenerateTrackingID(t *testing.T) {
	pattern := regexp.MustCompile(`^GR\d{10}$`)
	for i := 0; i < 100; i++ {
		id := domain.GenerateTrackingID()
		if !pattern.MatchString(id) {
			t.Fatalf("GenerateTrackingID() = %q, want GR followed by 10 digits", id)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{domain.StatusPending, domain.StatusInProgress, true},
		{domain.StatusPending, domain.StatusResolved, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusResolved, true},
		{domain.StatusInProgress, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusPending, false},
		{domain.StatusResolved, domain.StatusInProgress, false},
		{domain.StatusRejected, domain.StatusPending, false},
		{domain.StatusPending, domain.StatusPending, false},
	}

	for _, tt := range tests {
		if got := domain.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[string]bool{
		domain.StatusPending:    false,
		domain.StatusInProgress: false,
		domain.StatusResolved:   true,
		domain.StatusRejected:   true,
	}
	for status, want := range terminal {
		if got := domain.IsTerminal(status); got != want {
			t.Errorf("IsTerminal(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "resolved", "rejected"} {
		if !domain.ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "closed", "PENDING", "done"} {
		if domain.ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
