// Package analysis orchestrates complaint analysis: language detection,
// translation to the working language, then sentiment scoring, department
// classification and similarity search over the translated text.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
	"github.com/jansunwai/jansunwai-backend/internal/analysis/stage"
)

// Pipeline runs the analysis stages over a single complaint. It holds no
// mutable state, so one Pipeline can serve all requests concurrently.
type Pipeline struct {
	logger zerolog.Logger
}

// NewPipeline creates a Pipeline
func NewPipeline(logger zerolog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With().Str("component", "analysis_pipeline").Logger()}
}

// Analyze runs every stage over text and assembles the composite result.
// It never fails: a panicking stage is replaced by its documented default
// and noted on Result.Error, and the remaining stages still run. The
// context is only consulted between stages; each stage is short-lived
// pure computation.
func (p *Pipeline) Analyze(ctx context.Context, text string, existing []domain.ComplaintSummary) *domain.Result {
	result := &domain.Result{}
	var stageErrors []string

	detection, err := runStage("language_detection", func() domain.LanguageDetection {
		return stage.DetectLanguage(text)
	}, stage.DefaultDetection)
	if err != nil {
		stageErrors = append(stageErrors, err.Error())
	}
	result.LanguageDetection = detection

	translatedText := text
	if ctx.Err() == nil && detection.Language != domain.LanguageEnglish {
		translation, err := runStage("translation", func() domain.Translation {
			return stage.Translate(text, detection.Language, domain.LanguageEnglish)
		}, func() domain.Translation {
			return domain.Translation{
				OriginalText:   text,
				TranslatedText: text,
				SourceLanguage: detection.Language,
				TargetLanguage: domain.LanguageEnglish,
			}
		})
		if err != nil {
			stageErrors = append(stageErrors, err.Error())
		}
		result.Translation = &translation
		translatedText = translation.TranslatedText
	}

	// Sentiment, classification and similarity only depend on the
	// translated text, so they run concurrently. Each goroutine writes a
	// distinct result field.
	var wg sync.WaitGroup
	var mu sync.Mutex
	wg.Add(3)

	go func() {
		defer wg.Done()
		sentiment, err := runStage("sentiment", func() domain.Sentiment {
			return stage.AnalyzeSentiment(translatedText)
		}, stage.DefaultSentiment)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			stageErrors = append(stageErrors, err.Error())
		}
		result.Sentiment = sentiment
	}()

	go func() {
		defer wg.Done()
		classification, err := runStage("classification", func() domain.Classification {
			return stage.ClassifyComplaint(translatedText)
		}, stage.DefaultClassification)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			stageErrors = append(stageErrors, err.Error())
		}
		result.Classification = classification
	}()

	go func() {
		defer wg.Done()
		similarity, err := runStage("similarity", func() domain.Similarity {
			return stage.FindSimilarComplaints(translatedText, existing)
		}, stage.DefaultSimilarity)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			stageErrors = append(stageErrors, err.Error())
		}
		result.Similarity = similarity
	}()

	wg.Wait()

	if len(stageErrors) > 0 {
		result.Error = strings.Join(stageErrors, "; ")
		p.logger.Warn().
			Str("error", result.Error).
			Int("failed_stages", len(stageErrors)).
			Msg("analysis degraded to stage defaults")
	}

	return result
}

// runStage executes fn, converting a panic into the stage's fallback
// value plus an error naming the stage.
func runStage[T any](name string, fn func() T, fallback func() T) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback()
			err = fmt.Errorf("%s stage failed: %v", name, r)
		}
	}()
	return fn(), nil
}
