package stage

import (
	"strings"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// departmentKeywords is scanned in slice order. Tag order and the
// strictly-greater tie break both depend on this ordering, so it is part
// of the classifier's contract.
var departmentKeywords = []struct {
	department domain.Department
	keywords   []string
}{
	{domain.DepartmentWater, []string{"water", "pipe", "leak", "tap", "supply", "drainage", "sewage", "flood"}},
	{domain.DepartmentElectricity, []string{"electricity", "power", "outage", "blackout", "voltage", "electric", "light", "transformer"}},
	{domain.DepartmentRoads, []string{"road", "street", "pothole", "highway", "traffic", "signal", "construction", "bridge"}},
	{domain.DepartmentSanitation, []string{"garbage", "waste", "trash", "clean", "sanitation", "dump", "collection"}},
	{domain.DepartmentPublicHealth, []string{"hospital", "clinic", "health", "medical", "doctor", "disease", "treatment"}},
	{domain.DepartmentEducation, []string{"school", "college", "education", "university", "teacher", "student", "classroom"}},
	{domain.DepartmentTransport, []string{"bus", "train", "transport", "metro", "vehicle", "schedule", "delay"}},
	{domain.DepartmentHousing, []string{"house", "apartment", "building", "lease", "rent", "construction", "roof"}},
	{domain.DepartmentLand, []string{"land", "property", "ownership", "survey", "title", "deed", "encroachment"}},
	{domain.DepartmentGeneral, []string{"general", "administration", "complaint", "government", "official", "corruption"}},
}

// ClassifyComplaint routes text to a department by substring keyword
// matching. The department with the most hits wins, earlier departments
// win ties, and with no hits at all it falls back to general at 0.3
// confidence. Tags collect every matched keyword across all departments
// in first-seen order.
func ClassifyComplaint(text string) domain.Classification {
	lower := strings.ToLower(text)

	best := domain.DepartmentGeneral
	highest := 0
	var tags []string
	seen := make(map[string]bool)

	for _, entry := range departmentKeywords {
		count := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				count++
				if !seen[keyword] {
					seen[keyword] = true
					tags = append(tags, keyword)
				}
			}
		}
		if count > highest {
			highest = count
			best = entry.department
		}
	}

	confidence := 0.3
	if highest > 0 {
		confidence = float64(highest) / 5
		if confidence > 1 {
			confidence = 1
		}
	}
	if tags == nil {
		tags = []string{}
	}

	return domain.Classification{Department: best, Confidence: confidence, Tags: tags}
}

// DefaultClassification is the degraded result when classification cannot
// run. Confidence 0 distinguishes it from a genuine no-match fallback at 0.3.
func DefaultClassification() domain.Classification {
	return domain.Classification{Department: domain.DepartmentGeneral, Confidence: 0, Tags: []string{}}
}
