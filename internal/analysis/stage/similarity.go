package stage

import (
	"sort"
	"strings"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// similarityThreshold is the Jaccard score above which a prior complaint
// counts as similar. Strictly greater than, so exactly 0.3 is excluded.
const similarityThreshold = 0.3

// FindSimilarComplaints compares text against prior complaints using word
// overlap. Only words longer than three characters participate. Matches
// are returned most recent first with the highest score seen.
func FindSimilarComplaints(text string, existing []domain.ComplaintSummary) domain.Similarity {
	words := significantWords(text)

	var similar []domain.ComplaintSummary
	highest := 0.0

	for _, complaint := range existing {
		complaintWords := significantWords(complaint.Text)

		common := 0
		union := len(complaintWords)
		for word := range words {
			if complaintWords[word] {
				common++
			} else {
				union++
			}
		}

		similarity := 0.0
		if union > 0 {
			similarity = float64(common) / float64(union)
		}
		if similarity > similarityThreshold {
			similar = append(similar, complaint)
			if similarity > highest {
				highest = similarity
			}
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].CreatedAt.After(similar[j].CreatedAt)
	})
	if similar == nil {
		similar = []domain.ComplaintSummary{}
	}

	return domain.Similarity{SimilarComplaints: similar, HighestScore: highest}
}

// DefaultSimilarity is the degraded result when comparison cannot run
func DefaultSimilarity() domain.Similarity {
	return domain.Similarity{SimilarComplaints: []domain.ComplaintSummary{}, HighestScore: 0}
}

func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) > 3 {
			words[word] = true
		}
	}
	return words
}
