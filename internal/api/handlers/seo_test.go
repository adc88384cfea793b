package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/chynybekuuludastan/content_optimizer/internal/config"
	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/llm"
)

type fakeAnalysisRepo struct {
	repository.AnalysisRepository
	history []models.SEOAnalysis
}

func (f *fakeAnalysisRepo) HistoryByContent(contentID uuid.UUID) ([]models.SEOAnalysis, error) {
	return f.history, nil
}

func (f *fakeAnalysisRepo) CountByContent(contentID uuid.UUID) (int64, error) {
	return int64(len(f.history)), nil
}

// unavailableProvider refuses every operation, like a gemini provider with
// no API key would
type unavailableProvider struct{}

func (unavailableProvider) AnalyzeContent(ctx context.Context, req *llm.AnalysisRequest) (*llm.AnalysisResult, error) {
	return nil, llm.ErrProviderUnavailable
}

func (unavailableProvider) SuggestKeywords(ctx context.Context, topic string, existing []string) ([]models.SuggestedKeyword, error) {
	return nil, llm.ErrProviderUnavailable
}

func (unavailableProvider) ImproveContent(ctx context.Context, content, suggestion, category string) (string, error) {
	return "", llm.ErrProviderUnavailable
}

func (unavailableProvider) GenerateOutline(ctx context.Context, topic string, keywords []string) (*llm.ContentOutline, error) {
	return nil, llm.ErrProviderUnavailable
}

func (unavailableProvider) Name() string { return "unavailable" }

func (unavailableProvider) Close() error { return nil }

func newSEOTestApp(h *SEOHandler, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/analyze/:contentId", h.AnalyzeContent)
	app.Get("/history/:contentId", h.GetHistory)
	return app
}

func TestGetHistoryIncludesTotal(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	contentID := uuid.New()
	contentRepo := &fakeContentRepo{content: &models.Content{ID: contentID, UserID: userID}}
	analysisRepo := &fakeAnalysisRepo{history: []models.SEOAnalysis{
		{ID: uuid.New(), ContentID: contentID, OverallScore: 78},
		{ID: uuid.New(), ContentID: contentID, OverallScore: 61},
	}}

	cfg := &config.Config{AnalysisTimeout: time.Second}
	svc := llm.NewService(llm.ServiceOptions{Provider: unavailableProvider{}})
	h := NewSEOHandler(contentRepo, analysisRepo, nil, svc, cfg)
	app := newSEOTestApp(h, userID)

	resp, err := app.Test(httptest.NewRequest("GET", "/history/"+contentID.String(), nil))
	assert.NoError(err)
	assert.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Data    []models.SEOAnalysis `json:"data"`
		Total   int64                `json:"total"`
	}
	assert.NoError(json.NewDecoder(resp.Body).Decode(&body))
	assert.True(body.Success)
	assert.Len(body.Data, 2)
	assert.Equal(int64(2), body.Total)
}

func TestAnalyzeContentRestoresStatusOnProviderFailure(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	content := &models.Content{ID: uuid.New(), UserID: userID, Title: "Draft", Status: models.StatusDraft}
	contentRepo := &fakeContentRepo{content: content}

	cfg := &config.Config{AnalysisTimeout: time.Second}
	svc := llm.NewService(llm.ServiceOptions{Provider: unavailableProvider{}})
	h := NewSEOHandler(contentRepo, &fakeAnalysisRepo{}, nil, svc, cfg)
	app := newSEOTestApp(h, userID)

	resp, err := app.Test(httptest.NewRequest("POST", "/analyze/"+content.ID.String(), nil))
	assert.NoError(err)
	assert.Equal(fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(models.StatusDraft, content.Status)
	// one write to analyzing, one write back
	assert.Equal(2, contentRepo.updateCalls)
}

func TestAnalyzeContentLogsFailedRollback(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	content := &models.Content{ID: uuid.New(), UserID: userID, Title: "Draft", Status: models.StatusDraft}
	// First Update persists analyzing, the rollback write fails
	contentRepo := &fakeContentRepo{content: content, failUpdate: 2}

	cfg := &config.Config{AnalysisTimeout: time.Second}
	svc := llm.NewService(llm.ServiceOptions{Provider: unavailableProvider{}})
	h := NewSEOHandler(contentRepo, &fakeAnalysisRepo{}, nil, svc, cfg)
	app := newSEOTestApp(h, userID)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	resp, err := app.Test(httptest.NewRequest("POST", "/analyze/"+content.ID.String(), nil))
	assert.NoError(err)
	assert.Equal(fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(buf.String(), "status rollback failed")
	assert.Contains(buf.String(), content.ID.String())
}
