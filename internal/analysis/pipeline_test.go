package analysis_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jansunwai/jansunwai-backend/internal/analysis"
	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

func newPipeline() *analysis.Pipeline {
	return analysis.NewPipeline(zerolog.Nop())
}

func TestAnalyzeEnglishComplaint(t *testing.T) {
	p := newPipeline()
	result := p.Analyze(context.Background(), "The water pipe near my house is leaking badly, this is urgent", nil)

	if result.LanguageDetection.Language != domain.LanguageEnglish {
		t.Errorf("detected language = %q, want en", result.LanguageDetection.Language)
	}
	if result.Translation != nil {
		t.Errorf("Translation = %+v, want nil for english input", result.Translation)
	}
	if result.Classification.Department != domain.DepartmentWater {
		t.Errorf("department = %q, want water", result.Classification.Department)
	}
	// "urgent" is the only negative token, so the score model lands on medium.
	if result.Sentiment.Urgency != domain.UrgencyMedium {
		t.Errorf("urgency = %q, want medium", result.Sentiment.Urgency)
	}
	if result.Error != "" {
		t.Errorf("Error = %q, want empty", result.Error)
	}
}

func TestAnalyzeHindiComplaintTranslates(t *testing.T) {
	p := newPipeline()
	result := p.Analyze(context.Background(), "मेरे इलाके में पानी की समस्या है", nil)

	if result.LanguageDetection.Language != domain.LanguageHindi {
		t.Fatalf("detected language = %q, want hi", result.LanguageDetection.Language)
	}
	if result.Translation == nil {
		t.Fatal("Translation = nil, want populated for hindi input")
	}
	if result.Translation.TargetLanguage != domain.LanguageEnglish {
		t.Errorf("target language = %q, want en", result.Translation.TargetLanguage)
	}
	if !strings.Contains(result.Translation.TranslatedText, "water problem") {
		t.Errorf("TranslatedText = %q, want it to contain %q", result.Translation.TranslatedText, "water problem")
	}
	// Classification runs on the translated text, so the hindi phrase
	// still routes to the water department.
	if result.Classification.Department != domain.DepartmentWater {
		t.Errorf("department = %q, want water", result.Classification.Department)
	}
}

func TestAnalyzeWithSimilarityCorpus(t *testing.T) {
	p := newPipeline()
	text := "water pipeline bursting flooding street"
	corpus := []domain.ComplaintSummary{
		{ID: "g1", Text: text, Department: domain.DepartmentWater, Status: "pending", CreatedAt: time.Now()},
		{ID: "g2", Text: "school admission fees dispute", Department: domain.DepartmentEducation, Status: "resolved", CreatedAt: time.Now()},
	}

	result := p.Analyze(context.Background(), text, corpus)
	if len(result.Similarity.SimilarComplaints) != 1 {
		t.Fatalf("similar count = %d, want 1", len(result.Similarity.SimilarComplaints))
	}
	if result.Similarity.SimilarComplaints[0].ID != "g1" {
		t.Errorf("similar complaint = %q, want g1", result.Similarity.SimilarComplaints[0].ID)
	}
	if result.Similarity.HighestScore != 1.0 {
		t.Errorf("HighestScore = %v, want 1.0", result.Similarity.HighestScore)
	}
}

func TestAnalyzeNeverFails(t *testing.T) {
	p := newPipeline()
	inputs := []string{
		"",
		"   \t\n  ",
		strings.Repeat("water problem urgent broken ", 500),
		strings.Repeat("x", 15000),
		"\x00\xff\xfe",
	}
	for _, input := range inputs {
		result := p.Analyze(context.Background(), input, nil)
		if result == nil {
			t.Fatalf("Analyze(%.20q) returned nil", input)
		}
		if result.Classification.Department == "" {
			t.Errorf("Analyze(%.20q) returned empty department", input)
		}
		if result.Similarity.SimilarComplaints == nil {
			t.Errorf("Analyze(%.20q) returned nil similar complaints", input)
		}
	}
}

func TestAnalyzeConcurrentCalls(t *testing.T) {
	p := newPipeline()
	done := make(chan *domain.Result, 20)
	for i := 0; i < 20; i++ {
		go func() {
			done <- p.Analyze(context.Background(), "garbage not collected, terrible smell, urgent issue", nil)
		}()
	}
	first := <-done
	for i := 1; i < 20; i++ {
		got := <-done
		if got.Classification.Department != first.Classification.Department ||
			got.Sentiment.Score != first.Sentiment.Score {
			t.Fatalf("concurrent results differ: %+v vs %+v", got, first)
		}
	}
}
