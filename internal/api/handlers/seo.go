// internal/api/handlers/seo.go
package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/chynybekuuludastan/content_optimizer/internal/config"
	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/analyzer"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/llm"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/revision"
)

// SEOHandler handles analysis requests
type SEOHandler struct {
	ContentRepo  repository.ContentRepository
	AnalysisRepo repository.AnalysisRepository
	RevisionRepo repository.RevisionRepository
	Chain        *revision.Chain
	LLM          *llm.Service
	Config       *config.Config
}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler(
	contentRepo repository.ContentRepository,
	analysisRepo repository.AnalysisRepository,
	revisionRepo repository.RevisionRepository,
	llmService *llm.Service,
	cfg *config.Config,
) *SEOHandler {
	return &SEOHandler{
		ContentRepo:  contentRepo,
		AnalysisRepo: analysisRepo,
		RevisionRepo: revisionRepo,
		Chain:        revision.NewChain(revisionRepo),
		LLM:          llmService,
		Config:       cfg,
	}
}

// ApplySuggestionRequest represents a request to mark or auto-apply an
// improvement from the latest analysis
type ApplySuggestionRequest struct {
	ContentID       string `json:"content_id" validate:"required"`
	SuggestionIndex int    `json:"suggestion_index"`
	ApplyType       string `json:"apply_type"` // manual (default) or auto
}

// OutlineRequest represents a request to generate a content outline
type OutlineRequest struct {
	Topic    string   `json:"topic" validate:"required"`
	Keywords []string `json:"keywords"`
}

// BasicMetricsRequest represents a request for deterministic text metrics
type BasicMetricsRequest struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	MetaDescription string   `json:"meta_description"`
	TargetKeywords  []string `json:"target_keywords"`
}

// AnalyzeContent runs a full analysis on a draft. The draft moves to
// analyzing for the duration of the call; on failure it returns to the
// status it had before and nothing is persisted.
func (h *SEOHandler) AnalyzeContent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	if err := content.BeginAnalysis(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Content is already being analyzed",
		})
	}
	if err := h.ContentRepo.Update(content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update content status",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.AnalysisTimeout)
	defer cancel()

	started := time.Now()
	result, err := h.LLM.AnalyzeContent(ctx, &llm.AnalysisRequest{
		Title:          content.Title,
		Content:        content.Content,
		TargetKeywords: content.TargetKeywords,
	})
	if err != nil {
		content.FailAnalysis()
		if rbErr := h.ContentRepo.Update(content); rbErr != nil {
			log.Printf("content %s stuck in analyzing: status rollback failed: %v", content.ID, rbErr)
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Analysis failed, content status restored",
		})
	}

	analysis := models.SEOAnalysis{
		ContentID:                content.ID,
		OverallScore:             result.OverallScore,
		Scores:                   datatypes.NewJSONType(result.Scores),
		SuggestedKeywords:        datatypes.NewJSONSlice(result.SuggestedKeywords),
		Improvements:             datatypes.NewJSONSlice(result.Improvements),
		AIInsights:               result.AIInsights,
		SuggestedTitle:           result.SuggestedTitle,
		SuggestedMetaDescription: result.SuggestedMetaDescription,
		ProviderUsed:             result.ProviderUsed,
		ProcessingMS:             time.Since(started).Milliseconds(),
	}

	// Link the analysis to the latest revision when one exists
	latest, err := h.RevisionRepo.LatestByContent(content.ID)
	if err == nil {
		analysis.RevisionID = &latest.ID
	}

	if err := h.AnalysisRepo.Create(&analysis); err != nil {
		content.FailAnalysis()
		if rbErr := h.ContentRepo.Update(content); rbErr != nil {
			log.Printf("content %s stuck in analyzing: status rollback failed: %v", content.ID, rbErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save analysis",
		})
	}

	if latest != nil {
		h.RevisionRepo.AttachAnalysis(latest.ID, analysis.ID, result.OverallScore)
	}

	if err := content.CompleteAnalysis(); err == nil {
		content.CurrentSEOScore = result.OverallScore
		content.LatestAnalysisID = &analysis.ID
		if err := h.ContentRepo.Update(content); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to update content score",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"analysis": analysis,
			"content": fiber.Map{
				"id":                content.ID,
				"status":            content.Status,
				"current_seo_score": content.CurrentSEOScore,
			},
			"cached": result.CachedResult,
		},
	})
}

// GetAnalysis returns the latest analysis plus deterministic metrics and
// the optimization checklist. A draft that has never been analyzed gets a
// 404; a failed analysis leaves no record behind.
func (h *SEOHandler) GetAnalysis(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	analysis, err := h.AnalysisRepo.FindLatestByContent(content.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No analysis found for this content",
		})
	}

	metrics := analyzer.BasicMetrics(content.Title, content.Content, content.TargetKeywords)
	checklist := analyzer.Checklist(content.Title, content.Content, content.MetaDescription, content.TargetKeywords)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"analysis":      analysis,
			"basic_metrics": metrics,
			"checklist":     checklist,
		},
	})
}

// GetKeywords returns keyword suggestions for a draft, together with the
// deterministic analysis of its current target keywords
func (h *SEOHandler) GetKeywords(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.AITimeout)
	defer cancel()

	suggestions, err := h.LLM.SuggestKeywords(ctx, content.Title, content.TargetKeywords)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to suggest keywords",
		})
	}

	keywordAnalysis := analyzer.AnalyzeKeywords(content.Content, content.TargetKeywords)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"suggestions":      suggestions,
			"keyword_analysis": keywordAnalysis,
		},
	})
}

// ApplySuggestion marks one improvement of the latest analysis as applied.
// With apply_type=auto the provider rewrites the draft and the change is
// recorded as a new revision.
func (h *SEOHandler) ApplySuggestion(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	req := new(ApplySuggestionRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	analysis, err := h.AnalysisRepo.FindLatestByContent(content.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No analysis found for this content",
		})
	}

	improvements := []models.Improvement(analysis.Improvements)
	if req.SuggestionIndex < 0 || req.SuggestionIndex >= len(improvements) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid suggestion index",
		})
	}

	improvement := &improvements[req.SuggestionIndex]
	if improvement.Applied {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Suggestion already applied",
		})
	}

	if req.ApplyType == "auto" {
		ctx, cancel := context.WithTimeout(c.Context(), h.Config.AITimeout)
		defer cancel()

		improved, err := h.LLM.ImproveContent(ctx, content.Content, improvement.Suggestion, improvement.Category)
		if err != nil {
			if errors.Is(err, llm.ErrProviderUnavailable) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"success": false,
					"error":   "Automatic apply requires an AI provider",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to improve content",
			})
		}

		// Snapshot before mutating so the previous state stays restorable
		if _, err := h.Chain.Append(content, "Applied suggestion: "+improvement.Suggestion); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to create revision",
			})
		}

		content.Content = improved
		if err := h.ContentRepo.Update(content); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to update content",
			})
		}
	}

	now := time.Now()
	improvement.Applied = true
	improvement.AppliedAt = &now
	analysis.Improvements = datatypes.NewJSONSlice(improvements)

	if err := h.AnalysisRepo.Update(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update analysis",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"improvement": improvement,
			"content_id":  content.ID,
		},
	})
}

// GetHistory returns all analysis scores for a draft, newest first
func (h *SEOHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	if _, err := h.ContentRepo.FindByIDAndUser(contentID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	history, err := h.AnalysisRepo.HistoryByContent(contentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch analysis history",
		})
	}

	total, err := h.AnalysisRepo.CountByContent(contentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch analysis history",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    history,
		"total":   total,
	})
}

// GenerateOutline generates an article outline for a topic. Outline
// generation has no deterministic fallback.
func (h *SEOHandler) GenerateOutline(c *fiber.Ctx) error {
	req := new(OutlineRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if req.Topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Topic is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.AITimeout)
	defer cancel()

	outline, err := h.LLM.GenerateOutline(ctx, req.Topic, req.Keywords)
	if err != nil {
		if errors.Is(err, llm.ErrProviderUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   "Outline generation requires an AI provider",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to generate outline",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    outline,
	})
}

// BasicMetrics computes deterministic text metrics for arbitrary input
// without touching stored content
func (h *SEOHandler) BasicMetrics(c *fiber.Ctx) error {
	req := new(BasicMetricsRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	metrics := analyzer.BasicMetrics(req.Title, req.Content, req.TargetKeywords)
	titleAnalysis := analyzer.AnalyzeTitle(req.Title, req.TargetKeywords)
	readability := analyzer.Readability(req.Content)
	checklist := analyzer.Checklist(req.Title, req.Content, req.MetaDescription, req.TargetKeywords)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"metrics":     metrics,
			"title":       titleAnalysis,
			"readability": readability,
			"checklist":   checklist,
		},
	})
}
