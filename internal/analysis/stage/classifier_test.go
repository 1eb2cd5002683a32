package stage_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
	"github.com/jansunwai/jansunwai-backend/internal/analysis/stage"
)

func TestClassifyComplaint(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantDepartment domain.Department
		wantConfidence float64
		wantTags       []string
	}{
		{
			name:           "water complaint with multiple hits",
			text:           "My tap has a water leak and the pipe is broken",
			wantDepartment: domain.DepartmentWater,
			wantConfidence: 0.8,
			wantTags:       []string{"water", "pipe", "leak", "tap"},
		},
		{
			name:           "no keyword falls back to general",
			text:           "Hello there",
			wantDepartment: domain.DepartmentGeneral,
			wantConfidence: 0.3,
			wantTags:       []string{},
		},
		{
			name:           "substring containment matches watering",
			text:           "watering the lawn floods my yard",
			wantDepartment: domain.DepartmentWater,
			wantConfidence: 0.4,
			wantTags:       []string{"water", "flood"},
		},
		{
			name:           "electricity outage",
			text:           "power outage since morning, transformer sparking",
			wantDepartment: domain.DepartmentElectricity,
			wantConfidence: 0.6,
			wantTags:       []string{"power", "outage", "transformer"},
		},
		{
			name:           "tie keeps earlier department",
			text:           "road construction blocks the house",
			wantDepartment: domain.DepartmentRoads,
			wantConfidence: 0.4,
			wantTags:       []string{"road", "construction", "house"},
		},
		{
			name:           "confidence caps at one",
			text:           "water pipe leak tap supply drainage sewage flood",
			wantDepartment: domain.DepartmentWater,
			wantConfidence: 1,
			wantTags: []string{
				"water", "pipe", "leak", "tap", "supply", "drainage", "sewage", "flood",
			},
		},
		{
			name:           "tags span departments in first-seen order",
			text:           "garbage dump near the school gate",
			wantDepartment: domain.DepartmentSanitation,
			wantConfidence: 0.4,
			wantTags:       []string{"garbage", "dump", "school"},
		},
		{
			name:           "empty string",
			text:           "",
			wantDepartment: domain.DepartmentGeneral,
			wantConfidence: 0.3,
			wantTags:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stage.ClassifyComplaint(tt.text)
			if got.Department != tt.wantDepartment {
				t.Errorf("Department = %q, want %q", got.Department, tt.wantDepartment)
			}
			if math.Abs(got.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if !reflect.DeepEqual(got.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", got.Tags, tt.wantTags)
			}
		})
	}
}

func TestClassifyComplaintDeterministic(t *testing.T) {
	text := "water leak near the school and garbage on the road"
	first := stage.ClassifyComplaint(text)
	for i := 0; i < 50; i++ {
		got := stage.ClassifyComplaint(text)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}
