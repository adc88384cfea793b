package llm

import (
	"time"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// AnalysisRequest carries the draft fields an analysis provider needs
type AnalysisRequest struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	TargetKeywords []string `json:"target_keywords,omitempty"`
}

// AnalysisResult is the structured analysis a provider returns. When a
// provider is configured its scores are stored verbatim; deterministic
// metrics are surfaced alongside but never blended in.
type AnalysisResult struct {
	OverallScore             int                       `json:"overallScore"`
	Scores                   models.ScoreBreakdown     `json:"scores"`
	SuggestedKeywords        []models.SuggestedKeyword `json:"suggestedKeywords"`
	Improvements             []models.Improvement      `json:"improvements"`
	AIInsights               string                    `json:"aiInsights"`
	SuggestedTitle           string                    `json:"suggestedTitle"`
	SuggestedMetaDescription string                    `json:"suggestedMetaDescription"`
	ProviderUsed             string                    `json:"provider_used,omitempty"`
	CachedResult             bool                      `json:"cached_result"`
	ProcessingTime           time.Duration             `json:"processing_time,omitempty"`
}

// OutlineSection is one H2 block of a generated outline
type OutlineSection struct {
	Heading     string   `json:"heading"`
	Subheadings []string `json:"subheadings"`
	KeyPoints   []string `json:"keyPoints"`
}

// ContentOutline is a generated article skeleton for a topic
type ContentOutline struct {
	SuggestedTitle     string              `json:"suggestedTitle"`
	MetaDescription    string              `json:"metaDescription"`
	Outline            []OutlineSection    `json:"outline"`
	EstimatedWordCount int                 `json:"estimatedWordCount"`
	KeywordPlacement   map[string][]string `json:"keywordPlacement,omitempty"`
}
