// Package stage holds the individual analysis stages of the complaint
// pipeline. Each stage is a pure function over its inputs so the pipeline
// can run them concurrently and recover from any of them independently.
package stage

import (
	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// scriptRule maps a Unicode block to a language. Rules are evaluated in
// order and the first hit wins, so Devanagari is checked before Tamil and
// mixed-script text is reported as Hindi.
type scriptRule struct {
	lo, hi     rune
	language   domain.Language
	confidence float64
}

var scriptRules = []scriptRule{
	{lo: 0x0900, hi: 0x097F, language: domain.LanguageHindi, confidence: 0.9},
	{lo: 0x0B80, hi: 0x0BFF, language: domain.LanguageTamil, confidence: 0.9},
}

// DefaultDetection is the degraded result used when detection cannot run
// at all. The lower confidence distinguishes it from a genuine English
// finding.
func DefaultDetection() domain.LanguageDetection {
	return domain.LanguageDetection{Language: domain.LanguageEnglish, Confidence: 0.5}
}

// DetectLanguage guesses the complaint language from the script of its
// characters. Text without Devanagari or Tamil characters is reported as
// English.
func DetectLanguage(text string) domain.LanguageDetection {
	for _, rule := range scriptRules {
		for _, r := range text {
			if r >= rule.lo && r <= rule.hi {
				return domain.LanguageDetection{Language: rule.language, Confidence: rule.confidence}
			}
		}
	}
	return domain.LanguageDetection{Language: domain.LanguageEnglish, Confidence: 0.8}
}
