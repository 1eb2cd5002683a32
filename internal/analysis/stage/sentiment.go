package stage

import (
	"math"
	"strings"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// negativeWords drives the token-count model. Tokens must match exactly
// after lower-casing, so punctuation attached to a word defeats the match.
var negativeWords = []string{
	"issue", "problem", "broken", "terrible", "bad",
	"urgent", "emergency", "dangerous", "unsafe", "critical",
}

// AnalyzeSentiment scores text by counting exact-match negative tokens.
// score is clamped to [-1, 1], magnitude is twice its absolute value and
// urgency follows the score thresholds. This is the model the analysis
// pipeline runs; KeywordUrgency is the alternate substring model.
func AnalyzeSentiment(text string) domain.Sentiment {
	negativeCount := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		for _, neg := range negativeWords {
			if word == neg {
				negativeCount++
				break
			}
		}
	}

	score := math.Max(-1, math.Min(1, -float64(negativeCount)/10))
	magnitude := math.Abs(score) * 2

	urgency := domain.UrgencyLow
	switch {
	case score < -0.5:
		urgency = domain.UrgencyHigh
	case score < 0:
		urgency = domain.UrgencyMedium
	}

	return domain.Sentiment{Score: score, Magnitude: magnitude, Urgency: urgency}
}

// DefaultSentiment is the degraded result when scoring cannot run
func DefaultSentiment() domain.Sentiment {
	return domain.Sentiment{Score: 0, Magnitude: 0, Urgency: domain.UrgencyLow}
}

// urgentKeywords and weightedNegativeKeywords drive the alternate
// substring-weighted model used when persisting grievances server-side.
var urgentKeywords = []string{
	"urgent", "emergency", "immediately", "danger", "critical", "life-threatening",
	"severe", "serious", "dying", "death", "fatal", "collapse", "accident",
}

var weightedNegativeKeywords = []string{
	"bad", "poor", "terrible", "awful", "horrible", "disgusting",
	"broken", "faulty", "useless", "damaged", "corrupt", "failed",
}

// KeywordSentiment is the output of the substring-weighted model.
// Score only goes negative, 0.1 per matched negative keyword.
type KeywordSentiment struct {
	Score   float64
	Urgency domain.Urgency
}

// KeywordUrgency scores text with the weighted keyword model. Every urgent
// keyword found as a substring adds 0.2 to an urgency score and every
// negative keyword subtracts 0.1 from the sentiment score. Urgency defaults
// to medium, rising to high at an urgency score of 0.4 and dropping to low
// only when the text is neither urgent nor clearly negative.
func KeywordUrgency(text string) KeywordSentiment {
	lower := strings.ToLower(text)

	urgencyScore := 0.0
	for _, keyword := range urgentKeywords {
		if strings.Contains(lower, keyword) {
			urgencyScore += 0.2
		}
	}

	sentimentScore := 0.0
	for _, keyword := range weightedNegativeKeywords {
		if strings.Contains(lower, keyword) {
			sentimentScore -= 0.1
		}
	}

	urgency := domain.UrgencyMedium
	if urgencyScore >= 0.4 {
		urgency = domain.UrgencyHigh
	} else if urgencyScore < 0.1 && sentimentScore > -0.2 {
		urgency = domain.UrgencyLow
	}

	return KeywordSentiment{Score: sentimentScore, Urgency: urgency}
}
