package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/analyzer"
)

// FallbackProvider produces a deterministic heuristic analysis when no AI
// provider is configured. It never fails and has no external dependencies.
type FallbackProvider struct{}

// NewFallbackProvider creates the deterministic fallback provider
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

// Name returns the provider name
func (p *FallbackProvider) Name() string {
	return "fallback"
}

// AnalyzeContent returns a heuristic analysis. The overall score is the
// rounded mean of three signals: a title-length band, a content-length band
// and keyword presence.
func (p *FallbackProvider) AnalyzeContent(ctx context.Context, request *AnalysisRequest) (*AnalysisResult, error) {
	wordCount := analyzer.WordCount(request.Content)
	hasKeywords := len(request.TargetKeywords) > 0

	titleScore := 20
	if request.Title != "" {
		if len(request.Title) >= 30 && len(request.Title) <= 60 {
			titleScore = 80
		} else {
			titleScore = 60
		}
	}

	contentScore := 40
	switch {
	case wordCount >= 1000:
		contentScore = 85
	case wordCount >= 500:
		contentScore = 70
	case wordCount >= 200:
		contentScore = 55
	}

	keywordScore := 40
	if hasKeywords {
		keywordScore = 70
	}

	overallScore := int(math.Round(float64(titleScore+contentScore+keywordScore) / 3))

	keywordPlacement := 40
	if hasKeywords {
		keywordPlacement = 65
	}

	suggestedTitle := request.Title
	if suggestedTitle == "" {
		suggestedTitle = "Add a compelling, keyword-rich title"
	}

	return &AnalysisResult{
		OverallScore: overallScore,
		Scores: models.ScoreBreakdown{
			KeywordDensity:    keywordScore,
			Readability:       65,
			TitleOptimization: titleScore,
			MetaDescription:   50,
			HeadingStructure:  60,
			ContentLength:     contentScore,
			KeywordPlacement:  keywordPlacement,
		},
		SuggestedKeywords: []models.SuggestedKeyword{
			{Keyword: "content optimization", Relevance: 85, SearchVolume: "medium", Difficulty: "medium"},
			{Keyword: "SEO best practices", Relevance: 80, SearchVolume: "high", Difficulty: "hard"},
			{Keyword: "digital content", Relevance: 75, SearchVolume: "medium", Difficulty: "easy"},
			{Keyword: "search ranking", Relevance: 70, SearchVolume: "medium", Difficulty: "medium"},
			{Keyword: "content strategy", Relevance: 68, SearchVolume: "high", Difficulty: "medium"},
		},
		Improvements: []models.Improvement{
			{Category: "Content", Suggestion: "Add more detailed examples and case studies to increase engagement", Priority: "high", Impact: 8},
			{Category: "Keywords", Suggestion: "Include target keywords in the first 100 words", Priority: "high", Impact: 7},
			{Category: "Structure", Suggestion: "Add more subheadings (H2, H3) to improve readability", Priority: "medium", Impact: 6},
			{Category: "Meta Description", Suggestion: "Create a compelling meta description under 160 characters", Priority: "medium", Impact: 5},
			{Category: "Title", Suggestion: "Consider adding a number or power word to the title", Priority: "low", Impact: 4},
		},
		AIInsights: "This is a heuristic analysis computed without an AI provider. Scores are based on content length, title length and keyword presence. Configure an AI provider for detailed insights.",
		SuggestedTitle:           suggestedTitle,
		SuggestedMetaDescription: "Configure an AI provider for generated meta description suggestions tailored to your content.",
		ProviderUsed:             p.Name(),
	}, nil
}

// SuggestKeywords returns deterministic topic-templated suggestions
func (p *FallbackProvider) SuggestKeywords(ctx context.Context, topic string, existing []string) ([]models.SuggestedKeyword, error) {
	return []models.SuggestedKeyword{
		{Keyword: fmt.Sprintf("%s guide", topic), Relevance: 85, SearchVolume: "medium", Difficulty: "medium"},
		{Keyword: fmt.Sprintf("%s tips", topic), Relevance: 80, SearchVolume: "high", Difficulty: "easy"},
		{Keyword: fmt.Sprintf("how to %s", topic), Relevance: 78, SearchVolume: "high", Difficulty: "medium"},
		{Keyword: fmt.Sprintf("%s best practices", topic), Relevance: 75, SearchVolume: "medium", Difficulty: "medium"},
		{Keyword: fmt.Sprintf("%s examples", topic), Relevance: 70, SearchVolume: "medium", Difficulty: "easy"},
	}, nil
}

// ImproveContent requires a configured AI provider
func (p *FallbackProvider) ImproveContent(ctx context.Context, content, suggestion, category string) (string, error) {
	return "", ErrProviderUnavailable
}

// GenerateOutline requires a configured AI provider
func (p *FallbackProvider) GenerateOutline(ctx context.Context, topic string, keywords []string) (*ContentOutline, error) {
	return nil, ErrProviderUnavailable
}

// Close implements the Provider interface
func (p *FallbackProvider) Close() error {
	return nil
}
