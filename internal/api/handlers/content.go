// internal/api/handlers/content.go
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/revision"
)

// statsCacheTTL bounds staleness of the per-user stats snapshot; mutations
// also invalidate it eagerly.
const statsCacheTTL = 30 * time.Second

// StatsCache is the slice of the redis wrapper the content handler uses
// for the stats endpoint.
type StatsCache interface {
	GetCached(key string, dest interface{}, ttl time.Duration, provider func() (interface{}, error)) error
	Delete(key string) error
}

// ContentHandler handles content draft requests
type ContentHandler struct {
	ContentRepo  repository.ContentRepository
	RevisionRepo repository.RevisionRepository
	Chain        *revision.Chain
	Cache        StatsCache
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentRepo repository.ContentRepository, revisionRepo repository.RevisionRepository, cache StatsCache) *ContentHandler {
	return &ContentHandler{
		ContentRepo:  contentRepo,
		RevisionRepo: revisionRepo,
		Chain:        revision.NewChain(revisionRepo),
		Cache:        cache,
	}
}

func statsCacheKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

// CreateContentRequest represents a request to create a content draft
type CreateContentRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Content         string   `json:"content" validate:"required"`
	ContentHTML     string   `json:"content_html"`
	MetaDescription string   `json:"meta_description" validate:"max=160"`
	TargetKeywords  []string `json:"target_keywords"`
}

// UpdateContentRequest represents a request to update a content draft
type UpdateContentRequest struct {
	Title             *string   `json:"title"`
	Content           *string   `json:"content"`
	ContentHTML       *string   `json:"content_html"`
	MetaDescription   *string   `json:"meta_description"`
	TargetKeywords    *[]string `json:"target_keywords"`
	Status            *string   `json:"status"`
	CreateRevision    bool      `json:"create_revision"`
	ChangeDescription string    `json:"change_description"`
}

// CreateContent creates a new draft together with its initial revision
func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	req := new(CreateContentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Title and content are required",
		})
	}
	if len(req.Title) > 200 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Title must be 200 characters or fewer",
		})
	}
	if len(req.MetaDescription) > 160 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Meta description must be 160 characters or fewer",
		})
	}

	content := models.Content{
		UserID:          userID,
		Title:           req.Title,
		Content:         req.Content,
		ContentHTML:     req.ContentHTML,
		MetaDescription: req.MetaDescription,
		TargetKeywords:  datatypes.NewJSONSlice(req.TargetKeywords),
		Status:          models.StatusDraft,
	}

	if err := h.ContentRepo.Create(&content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create content",
		})
	}

	// Every draft starts its history at version 1
	if _, err := h.Chain.Append(&content, "Initial draft created"); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to record initial revision",
		})
	}

	h.Cache.Delete(statsCacheKey(userID))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    content,
	})
}

// ListContents lists the current user's drafts with filtering and pagination
func (h *ContentHandler) ListContents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	q := repository.ContentQuery{
		Status:   c.Query("status"),
		Sort:     c.Query("sort", "created"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Status != "" && !models.ContentStatus(q.Status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid status filter",
		})
	}

	contents, total, err := h.ContentRepo.FindAllByUser(userID, q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch contents",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    contents,
		"meta": fiber.Map{
			"total":     total,
			"page":      q.Page,
			"page_size": q.PageSize,
		},
	})
}

// GetContent returns one draft with its revisions and latest analysis
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindWithDetails(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    content,
	})
}

// UpdateContent updates a draft, optionally snapshotting a revision first
func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	req := new(UpdateContentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	// Snapshot the pre-update state when asked to
	if req.CreateRevision {
		if _, err := h.Chain.Append(content, req.ChangeDescription); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to create revision",
			})
		}
	}

	if req.Title != nil {
		if *req.Title == "" || len(*req.Title) > 200 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Title must be between 1 and 200 characters",
			})
		}
		content.Title = *req.Title
	}
	if req.Content != nil {
		content.Content = *req.Content
	}
	if req.ContentHTML != nil {
		content.ContentHTML = *req.ContentHTML
	}
	if req.MetaDescription != nil {
		if len(*req.MetaDescription) > 160 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Meta description must be 160 characters or fewer",
			})
		}
		content.MetaDescription = *req.MetaDescription
	}
	if req.TargetKeywords != nil {
		content.TargetKeywords = datatypes.NewJSONSlice(*req.TargetKeywords)
	}
	if req.Status != nil {
		target := models.ContentStatus(*req.Status)
		if !target.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid status",
			})
		}
		if target != content.Status {
			if !content.Status.CanTransition(target) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"success": false,
					"error":   "Invalid status transition",
				})
			}
			content.Status = target
		}
	}

	if err := h.ContentRepo.Update(content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update content",
		})
	}

	h.Cache.Delete(statsCacheKey(userID))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    content,
	})
}

// DeleteContent removes a draft along with its revisions and analyses
func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(contentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Content not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	if err := h.ContentRepo.DeleteCascade(content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete content",
		})
	}

	h.Cache.Delete(statsCacheKey(userID))

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Content deleted successfully",
	})
}

// statsPayload is the cached shape of the stats endpoint response
type statsPayload struct {
	Stats  *repository.ContentStats `json:"stats"`
	Recent []*models.Content        `json:"recent"`
}

// GetStats returns aggregate statistics for the current user's drafts,
// served from cache within statsCacheTTL
func (h *ContentHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	var payload statsPayload
	err := h.Cache.GetCached(statsCacheKey(userID), &payload, statsCacheTTL, func() (interface{}, error) {
		stats, err := h.ContentRepo.Stats(userID)
		if err != nil {
			return nil, err
		}
		recent, err := h.ContentRepo.RecentByUser(userID, 5)
		if err != nil {
			return nil, err
		}
		return statsPayload{Stats: stats, Recent: recent}, nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payload,
	})
}
