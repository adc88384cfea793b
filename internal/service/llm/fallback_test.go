package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnalyzeDeterministic(t *testing.T) {
	assert := assert.New(t)

	p := NewFallbackProvider()
	req := &AnalysisRequest{
		Title:          "The Complete Guide to On-Page SEO for Busy Developers",
		Content:        strings.Repeat("word ", 600),
		TargetKeywords: []string{"seo"},
	}

	first, err := p.AnalyzeContent(context.Background(), req)
	assert.NoError(err)
	second, err := p.AnalyzeContent(context.Background(), req)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestFallbackAnalyzeScoreBands(t *testing.T) {
	assert := assert.New(t)

	p := NewFallbackProvider()

	// Empty everything lands in the lowest bands: 20 + 40 + 40 over 3
	result, err := p.AnalyzeContent(context.Background(), &AnalysisRequest{})
	assert.NoError(err)
	assert.Equal(33, result.OverallScore)
	assert.Equal(20, result.Scores.TitleOptimization)
	assert.Equal(40, result.Scores.ContentLength)
	assert.Equal(40, result.Scores.KeywordDensity)
	assert.Equal(40, result.Scores.KeywordPlacement)

	// Optimal title, long content, keywords set: 80 + 85 + 70 over 3
	result, err = p.AnalyzeContent(context.Background(), &AnalysisRequest{
		Title:          "The Complete Guide to On-Page SEO for Busy Developers",
		Content:        strings.Repeat("word ", 1000),
		TargetKeywords: []string{"seo"},
	})
	assert.NoError(err)
	assert.Equal(78, result.OverallScore)
	assert.Equal(80, result.Scores.TitleOptimization)
	assert.Equal(85, result.Scores.ContentLength)
	assert.Equal(70, result.Scores.KeywordDensity)
	assert.Equal(65, result.Scores.KeywordPlacement)

	// Present but non-optimal title, mid-length content
	result, err = p.AnalyzeContent(context.Background(), &AnalysisRequest{
		Title:   "Short title",
		Content: strings.Repeat("word ", 500),
	})
	assert.NoError(err)
	assert.Equal(60, result.Scores.TitleOptimization)
	assert.Equal(70, result.Scores.ContentLength)
}

func TestFallbackAnalyzeFixedAncillaryScores(t *testing.T) {
	assert := assert.New(t)

	p := NewFallbackProvider()
	result, err := p.AnalyzeContent(context.Background(), &AnalysisRequest{Title: "t", Content: "c"})
	assert.NoError(err)

	assert.Equal(65, result.Scores.Readability)
	assert.Equal(50, result.Scores.MetaDescription)
	assert.Equal(60, result.Scores.HeadingStructure)
	assert.Len(result.SuggestedKeywords, 5)
	assert.Len(result.Improvements, 5)
	assert.Equal("fallback", result.ProviderUsed)
	for _, imp := range result.Improvements {
		assert.False(imp.Applied)
		assert.Nil(imp.AppliedAt)
	}
}

func TestFallbackSuggestKeywords(t *testing.T) {
	assert := assert.New(t)

	p := NewFallbackProvider()
	keywords, err := p.SuggestKeywords(context.Background(), "content marketing", nil)
	assert.NoError(err)
	assert.Len(keywords, 5)
	assert.Equal("content marketing guide", keywords[0].Keyword)
	assert.Equal("how to content marketing", keywords[2].Keyword)
}

func TestFallbackUnavailableOperations(t *testing.T) {
	assert := assert.New(t)

	p := NewFallbackProvider()

	_, err := p.ImproveContent(context.Background(), "body", "do better", "Content")
	assert.ErrorIs(err, ErrProviderUnavailable)

	_, err = p.GenerateOutline(context.Background(), "topic", nil)
	assert.ErrorIs(err, ErrProviderUnavailable)
}

func TestCleanJSONResponse(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(`{"a":1}`, CleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(`{"a":1}`, CleanJSONResponse("```\n{\"a\":1}\n```"))
	assert.Equal(`{"a":1}`, CleanJSONResponse(`{"a":1}`))
	assert.Equal(`{"a":1}`, CleanJSONResponse("  {\"a\":1}\n"))
	assert.Equal(`{"a":1}`, CleanJSONResponse("Here you go:\n```json\n{\"a\":1}\n```\nLet me know!"))
}
