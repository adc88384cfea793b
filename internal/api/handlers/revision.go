// internal/api/handlers/revision.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/revision"
)

// RevisionHandler handles revision history requests
type RevisionHandler struct {
	ContentRepo  repository.ContentRepository
	RevisionRepo repository.RevisionRepository
	Chain        *revision.Chain
}

// NewRevisionHandler creates a new revision handler
func NewRevisionHandler(contentRepo repository.ContentRepository, revisionRepo repository.RevisionRepository) *RevisionHandler {
	return &RevisionHandler{
		ContentRepo:  contentRepo,
		RevisionRepo: revisionRepo,
		Chain:        revision.NewChain(revisionRepo),
	}
}

// CreateRevisionRequest represents a request to snapshot a draft manually
type CreateRevisionRequest struct {
	Changes string `json:"changes"`
}

// ListRevisions returns a draft's revision history, newest version first
func (h *RevisionHandler) ListRevisions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	// Ownership check; non-owners get a 404
	if _, err := h.ContentRepo.FindByIDAndUser(contentID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	revisions, err := h.Chain.List(contentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch revisions",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    revisions,
	})
}

// GetRevision returns a single full revision snapshot
func (h *RevisionHandler) GetRevision(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	revisionID, err := uuid.Parse(c.Params("revisionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid revision ID",
		})
	}

	rev, err := h.RevisionRepo.FindByID(revisionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	if _, err := h.ContentRepo.FindByIDAndUser(rev.ContentID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rev,
	})
}

// CompareRevisions returns two snapshots and their score and word count
// differences, second relative to first
func (h *RevisionHandler) CompareRevisions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	aID, err := uuid.Parse(c.Params("v1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid revision ID",
		})
	}
	bID, err := uuid.Parse(c.Params("v2"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid revision ID",
		})
	}

	comparison, err := h.Chain.Compare(aID, bID)
	if err != nil {
		if errors.Is(err, revision.ErrInvalidComparison) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Revisions must belong to the same content",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	if _, err := h.ContentRepo.FindByIDAndUser(comparison.RevisionA.ContentID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    comparison,
	})
}

// CreateRevision snapshots the draft's current state on demand
func (h *RevisionHandler) CreateRevision(c *fiber.Ctx) error {
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

	req := new(CreateRevisionRequest)
	// Body is optional for manual snapshots
	_ = c.BodyParser(req)
	if req.Changes == "" {
		req.Changes = "Manual revision"
	}

	rev, err := h.Chain.Append(content, req.Changes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create revision",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    rev,
	})
}

// RestoreRevision restores a draft to a past revision's snapshot. The
// restored state is recorded as a new revision before the draft is
// overwritten, so history stays append-only.
func (h *RevisionHandler) RestoreRevision(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uuid.UUID)

	revisionID, err := uuid.Parse(c.Params("revisionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid revision ID",
		})
	}

	target, err := h.RevisionRepo.FindByID(revisionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	content, err := h.ContentRepo.FindByIDAndUser(target.ContentID, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Revision not found",
		})
	}

	rev, err := h.Chain.RestoreFrom(content, revisionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to restore revision",
		})
	}

	if err := h.ContentRepo.Update(content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save restored content",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"content":  content,
			"revision": rev,
		},
	})
}
