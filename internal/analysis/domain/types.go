// Package domain defines the data model of the complaint-analysis pipeline.
// All values are immutable once returned: every pipeline invocation allocates
// fresh results and nothing here is persisted by the pipeline itself.
package domain

import "time"

// Language is a supported complaint language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTamil   Language = "ta"
)

// IsValid reports whether the language is one of the supported set
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageHindi || l == LanguageTamil
}

// Department is a subject-matter department a grievance can be routed to
type Department string

const (
	DepartmentWater        Department = "water"
	DepartmentElectricity  Department = "electricity"
	DepartmentRoads        Department = "roads"
	DepartmentSanitation   Department = "sanitation"
	DepartmentPublicHealth Department = "public_health"
	DepartmentEducation    Department = "education"
	DepartmentTransport    Department = "transport"
	DepartmentHousing      Department = "housing"
	DepartmentLand         Department = "land"
	// DepartmentGeneral is both a real classification target and the
	// fallback when no keyword matches.
	DepartmentGeneral Department = "general"
)

// Urgency is the coarse priority derived from sentiment analysis
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// LanguageDetection is the result of script-based language detection
type LanguageDetection struct {
	Language   Language `json:"detected_language"`
	Confidence float64  `json:"confidence"`
}

// Translation is the result of normalizing a complaint to the working language.
// When SourceLanguage equals TargetLanguage, TranslatedText is the original
// text verbatim.
type Translation struct {
	OriginalText   string   `json:"original_text"`
	TranslatedText string   `json:"translated_text"`
	SourceLanguage Language `json:"source_language"`
	TargetLanguage Language `json:"target_language"`
}

// Sentiment is the negativity/urgency score of a complaint.
// Score is in [-1, 1] where negative means more negative sentiment.
type Sentiment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
	Urgency   Urgency `json:"urgency"`
}

// Classification is the department routing decision for a complaint.
// Tags holds every matched keyword in first-seen order, deduplicated.
type Classification struct {
	Department Department `json:"department"`
	Confidence float64    `json:"confidence"`
	Tags       []string   `json:"tags"`
}

// ComplaintSummary is a prior complaint supplied by the caller as the
// similarity corpus. The pipeline only reads it.
type ComplaintSummary struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Department Department `json:"department"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Similarity holds prior complaints whose word overlap with the new
// complaint exceeds the similarity threshold, most recent first.
type Similarity struct {
	SimilarComplaints []ComplaintSummary `json:"similar_complaints"`
	HighestScore      float64            `json:"highest_similarity_score"`
}

// Result is the composite output of the analysis pipeline.
// Translation is nil when the complaint was already in the working language.
// Error carries the messages of any stages that degraded to their defaults;
// the rest of the result is still valid best-effort output.
type Result struct {
	LanguageDetection LanguageDetection `json:"language_detection"`
	Translation       *Translation      `json:"translation,omitempty"`
	Sentiment         Sentiment         `json:"sentiment"`
	Classification    Classification    `json:"classification"`
	Similarity        Similarity        `json:"similarity"`
	Error             string            `json:"error,omitempty"`
}

// Degraded reports whether any stage fell back to its failure default
func (r *Result) Degraded() bool {
	return r.Error != ""
}
