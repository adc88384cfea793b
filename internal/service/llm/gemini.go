package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// GeminiProvider implements the Provider interface for Google's Gemini API
type GeminiProvider struct {
	apiKey    string
	modelName string
	client    *genai.Client
	logger    Logger
}

// NewGeminiProvider creates a new Gemini provider using the official client
func NewGeminiProvider(apiKey string, modelName string, logger Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrProviderUnavailable
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = &DefaultLogger{}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
		logger:    logger,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// newModel returns a configured generative model
func (p *GeminiProvider) newModel(temperature float32, maxTokens int32) *genai.GenerativeModel {
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(temperature)
	model.SetTopP(0.95)
	model.SetTopK(40)
	model.SetMaxOutputTokens(maxTokens)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}
	return model
}

// generate runs a prompt and returns the concatenated text parts
func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		p.logger.Error("Gemini API error", "error", err)
		return "", fmt.Errorf("gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no content generated")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("content blocked: %s", resp.PromptFeedback.BlockReason)
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			text += string(textPart)
		}
	}
	return text, nil
}

const analysisPromptFormat = `You are an expert SEO analyst. Analyze the following content for SEO optimization and provide a detailed analysis.

Title: %s

Content:
%s

Target Keywords: %s

Provide your analysis in the following JSON format ONLY (no additional text):
{
  "overallScore": <number 0-100>,
  "scores": {
    "keywordDensity": <number 0-100>,
    "readability": <number 0-100>,
    "titleOptimization": <number 0-100>,
    "metaDescription": <number 0-100>,
    "headingStructure": <number 0-100>,
    "contentLength": <number 0-100>,
    "keywordPlacement": <number 0-100>
  },
  "suggestedKeywords": [
    {
      "keyword": "<keyword>",
      "relevance": <number 0-100>,
      "searchVolume": "<high|medium|low>",
      "difficulty": "<easy|medium|hard>"
    }
  ],
  "improvements": [
    {
      "category": "<Title|Meta Description|Content|Keywords|Structure|Readability>",
      "suggestion": "<specific actionable suggestion>",
      "priority": "<high|medium|low>",
      "impact": <number 1-10>
    }
  ],
  "aiInsights": "<2-3 sentences of overall insights and recommendations>",
  "suggestedTitle": "<optimized title suggestion>",
  "suggestedMetaDescription": "<optimized meta description under 160 characters>"
}

Important guidelines:
- Be specific and actionable in your suggestions
- Consider keyword placement in title, first paragraph, and throughout
- Evaluate readability for general audience (aim for 8th grade level)
- Suggest 5-8 relevant keywords
- Provide 4-6 improvement suggestions
- Keep meta description under 160 characters`

// AnalyzeContent implements the Provider interface
func (p *GeminiProvider) AnalyzeContent(ctx context.Context, request *AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()
	model := p.newModel(0.7, 2048)

	keywords := "Not specified"
	if len(request.TargetKeywords) > 0 {
		keywords = strings.Join(request.TargetKeywords, ", ")
	}

	prompt := fmt.Sprintf(analysisPromptFormat, request.Title, request.Content, keywords)
	p.logger.Debug("Sending analysis prompt to Gemini", "title", request.Title)

	text, err := p.generate(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(CleanJSONResponse(text)), &result); err != nil {
		p.logger.Error("Failed to parse Gemini analysis", "error", err, "response", text)
		return nil, fmt.Errorf("%w: %v", ErrResponseProcessing, err)
	}

	result.OverallScore = clampScore(result.OverallScore)
	result.Scores = clampBreakdown(result.Scores)
	for i := range result.Improvements {
		result.Improvements[i].Applied = false
		result.Improvements[i].AppliedAt = nil
	}

	result.ProviderUsed = p.Name()
	result.ProcessingTime = time.Since(startTime)
	return &result, nil
}

// SuggestKeywords implements the Provider interface
func (p *GeminiProvider) SuggestKeywords(ctx context.Context, topic string, existing []string) ([]models.SuggestedKeyword, error) {
	model := p.newModel(0.7, 1024)

	existingStr := "None"
	if len(existing) > 0 {
		existingStr = strings.Join(existing, ", ")
	}

	prompt := fmt.Sprintf(`Generate SEO keyword suggestions for the following topic.

Topic: %s
Existing Keywords: %s

Provide 10 keyword suggestions in the following JSON format ONLY:
{
  "keywords": [
    {
      "keyword": "<keyword phrase>",
      "relevance": <number 0-100>,
      "searchVolume": "<high|medium|low>",
      "difficulty": "<easy|medium|hard>"
    }
  ]
}`, topic, existingStr)

	text, err := p.generate(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Keywords []models.SuggestedKeyword `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(CleanJSONResponse(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseProcessing, err)
	}
	return parsed.Keywords, nil
}

// ImproveContent implements the Provider interface
func (p *GeminiProvider) ImproveContent(ctx context.Context, content, suggestion, category string) (string, error) {
	model := p.newModel(0.7, 2048)

	prompt := fmt.Sprintf(`You are an expert content editor specializing in SEO optimization.

Original Content:
%s

Improvement Suggestion:
Category: %s
Suggestion: %s

Apply the suggestion to improve the content. Return ONLY the improved content, maintaining the original tone and style while incorporating the SEO improvement.`,
		content, category, suggestion)

	text, err := p.generate(ctx, model, prompt)
	if err != nil {
		return "", err
	}

	improved := strings.TrimSpace(text)
	if improved == "" {
		return "", ErrResponseProcessing
	}
	return improved, nil
}

// GenerateOutline implements the Provider interface
func (p *GeminiProvider) GenerateOutline(ctx context.Context, topic string, keywords []string) (*ContentOutline, error) {
	model := p.newModel(0.7, 1536)

	prompt := fmt.Sprintf(`Create an SEO-optimized content outline for the following:

Topic: %s
Target Keywords: %s

Provide the outline in JSON format:
{
  "suggestedTitle": "<SEO-optimized title>",
  "metaDescription": "<under 160 characters>",
  "outline": [
    {
      "heading": "<H2 heading>",
      "subheadings": ["<H3>", "<H3>"],
      "keyPoints": ["<point>", "<point>"]
    }
  ],
  "estimatedWordCount": <number>,
  "keywordPlacement": {
    "title": ["<keyword to include>"],
    "introduction": ["<keywords>"],
    "body": ["<keywords>"],
    "conclusion": ["<keywords>"]
  }
}`, topic, strings.Join(keywords, ", "))

	text, err := p.generate(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	var outline ContentOutline
	if err := json.Unmarshal([]byte(CleanJSONResponse(text)), &outline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseProcessing, err)
	}
	return &outline, nil
}

// Close closes the Gemini client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// clampScore keeps a score within [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// clampBreakdown clamps every category score to [0,100]
func clampBreakdown(s models.ScoreBreakdown) models.ScoreBreakdown {
	s.KeywordDensity = clampScore(s.KeywordDensity)
	s.Readability = clampScore(s.Readability)
	s.TitleOptimization = clampScore(s.TitleOptimization)
	s.MetaDescription = clampScore(s.MetaDescription)
	s.HeadingStructure = clampScore(s.HeadingStructure)
	s.ContentLength = clampScore(s.ContentLength)
	s.KeywordPlacement = clampScore(s.KeywordPlacement)
	return s
}
