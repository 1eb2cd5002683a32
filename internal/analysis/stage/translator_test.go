package stage_test

import (
	"testing"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
	"github.com/jansunwai/jansunwai-backend/internal/analysis/stage"
)

func TestTranslateIdentity(t *testing.T) {
	texts := []string{
		"",
		"water problem in my area",
		"completely unknown sentence",
	}
	for _, text := range texts {
		got := stage.Translate(text, domain.LanguageEnglish, domain.LanguageEnglish)
		if got.TranslatedText != text {
			t.Errorf("Translate(%q, en, en).TranslatedText = %q, want unchanged", text, got.TranslatedText)
		}
		if got.OriginalText != text {
			t.Errorf("Translate(%q, en, en).OriginalText = %q, want unchanged", text, got.OriginalText)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source domain.Language
		target domain.Language
		want   string
	}{
		{
			name:   "english phrase to hindi",
			text:   "There is a water problem in my street",
			source: domain.LanguageEnglish,
			target: domain.LanguageHindi,
			want:   "There is a पानी की समस्या in my street",
		},
		{
			name:   "english phrase case-insensitive",
			text:   "WATER PROBLEM again",
			source: domain.LanguageEnglish,
			target: domain.LanguageTamil,
			want:   "தண்ணீர் பிரச்சனை again",
		},
		{
			name:   "hindi phrase to english",
			text:   "मेरे इलाके में पानी की समस्या है",
			source: domain.LanguageHindi,
			target: domain.LanguageEnglish,
			want:   "मेरे इलाके में water problem है",
		},
		{
			name:   "tamil phrase to english",
			text:   "தண்ணீர் பிரச்சனை உள்ளது",
			source: domain.LanguageTamil,
			target: domain.LanguageEnglish,
			want:   "water problem உள்ளது",
		},
		{
			name:   "hindi phrase to tamil",
			text:   "पानी की समस्या",
			source: domain.LanguageHindi,
			target: domain.LanguageTamil,
			want:   "தண்ணீர் பிரச்சனை",
		},
		{
			name:   "unknown phrase passes through",
			text:   "streetlight is flickering",
			source: domain.LanguageEnglish,
			target: domain.LanguageHindi,
			want:   "streetlight is flickering",
		},
		{
			// Lowering U+0130 grows the string by a byte; the match
			// offsets must still land on rune boundaries of the input.
			name:   "multibyte rune before the phrase",
			text:   "İwater problem",
			source: domain.LanguageEnglish,
			target: domain.LanguageHindi,
			want:   "İपानी की समस्या",
		},
		{
			name:   "multiple phrases in one text",
			text:   "water problem and electricity issue both",
			source: domain.LanguageEnglish,
			target: domain.LanguageHindi,
			want:   "पानी की समस्या and बिजली की समस्या both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stage.Translate(tt.text, tt.source, tt.target)
			if got.TranslatedText != tt.want {
				t.Errorf("TranslatedText = %q, want %q", got.TranslatedText, tt.want)
			}
			if got.SourceLanguage != tt.source || got.TargetLanguage != tt.target {
				t.Errorf("languages = %q->%q, want %q->%q",
					got.SourceLanguage, got.TargetLanguage, tt.source, tt.target)
			}
			if got.OriginalText != tt.text {
				t.Errorf("OriginalText = %q, want %q", got.OriginalText, tt.text)
			}
		})
	}
}
