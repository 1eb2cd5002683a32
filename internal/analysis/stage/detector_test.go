package stage_test

import (
	"testing"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
	"github.com/jansunwai/jansunwai-backend/internal/analysis/stage"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantLanguage   domain.Language
		wantConfidence float64
	}{
		{
			name:           "plain english",
			text:           "The water pipe near my house is leaking badly",
			wantLanguage:   domain.LanguageEnglish,
			wantConfidence: 0.8,
		},
		{
			name:           "hindi devanagari",
			text:           "पानी की समस्या",
			wantLanguage:   domain.LanguageHindi,
			wantConfidence: 0.9,
		},
		{
			name:           "tamil script",
			text:           "தண்ணீர் பிரச்சனை",
			wantLanguage:   domain.LanguageTamil,
			wantConfidence: 0.9,
		},
		{
			name:           "mixed hindi and tamil reports hindi",
			text:           "தண்ணீர் पानी",
			wantLanguage:   domain.LanguageHindi,
			wantConfidence: 0.9,
		},
		{
			name:           "hindi embedded in english",
			text:           "complaint about पानी supply",
			wantLanguage:   domain.LanguageHindi,
			wantConfidence: 0.9,
		},
		{
			name:           "empty string",
			text:           "",
			wantLanguage:   domain.LanguageEnglish,
			wantConfidence: 0.8,
		},
		{
			name:           "digits and punctuation",
			text:           "house no. 42, sector 9!",
			wantLanguage:   domain.LanguageEnglish,
			wantConfidence: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stage.DetectLanguage(tt.text)
			if got.Language != tt.wantLanguage {
				t.Errorf("DetectLanguage(%q).Language = %q, want %q", tt.text, got.Language, tt.wantLanguage)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("DetectLanguage(%q).Confidence = %v, want %v", tt.text, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestDefaultDetection(t *testing.T) {
	got := stage.DefaultDetection()
	if got.Language != domain.LanguageEnglish || got.Confidence != 0.5 {
		t.Errorf("DefaultDetection() = %+v, want en at 0.5", got)
	}
}
