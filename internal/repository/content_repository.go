package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// ContentQuery holds list filters for content drafts
type ContentQuery struct {
	Status   string
	Sort     string // created, updated, score, title
	Page     int
	PageSize int
}

// ContentStats aggregates a user's content statistics
type ContentStats struct {
	TotalDrafts    int64   `json:"total_drafts"`
	AvgSEOScore    float64 `json:"avg_seo_score"`
	TotalWords     int64   `json:"total_words"`
	DraftCount     int64   `json:"draft_count"`
	OptimizedCount int64   `json:"optimized_count"`
	PublishedCount int64   `json:"published_count"`
}

// ContentRepository defines operations for the Content model. All lookups
// are scoped by the owning user so a non-owner sees a not-found, never
// someone else's draft.
type ContentRepository interface {
	Repository
	FindByIDAndUser(id, userID uuid.UUID) (*models.Content, error)
	FindWithDetails(id, userID uuid.UUID) (*models.Content, error)
	FindAllByUser(userID uuid.UUID, q ContentQuery) ([]*models.Content, int64, error)
	DeleteCascade(content *models.Content) error
	Stats(userID uuid.UUID) (*ContentStats, error)
	RecentByUser(userID uuid.UUID, limit int) ([]*models.Content, error)
}

// contentRepository implements ContentRepository
type contentRepository struct {
	*BaseRepository
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{BaseRepository: NewBaseRepository(db)}
}

// FindByIDAndUser finds a content draft owned by the given user
func (r *contentRepository) FindByIDAndUser(id, userID uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// FindWithDetails finds an owned draft with revisions and latest analysis
func (r *contentRepository) FindWithDetails(id, userID uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).
		Preload("Revisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version DESC")
		}).
		Preload("LatestAnalysis").
		First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// FindAllByUser lists a user's drafts with filtering, sorting and pagination
func (r *contentRepository) FindAllByUser(userID uuid.UUID, q ContentQuery) ([]*models.Content, int64, error) {
	var contents []*models.Content
	var count int64

	query := r.DB.Model(&models.Content{}).Where("user_id = ?", userID)
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch q.Sort {
	case "score":
		order = "current_seo_score DESC"
	case "title":
		order = "title ASC"
	case "updated":
		order = "updated_at DESC"
	}

	offset := (q.Page - 1) * q.PageSize
	if err := query.
		Preload("LatestAnalysis").
		Offset(offset).
		Limit(q.PageSize).
		Order(order).
		Find(&contents).Error; err != nil {
		return nil, 0, err
	}

	return contents, count, nil
}

// DeleteCascade removes a draft together with its revisions and analyses
func (r *contentRepository) DeleteCascade(content *models.Content) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", content.ID).Delete(&models.Revision{}).Error; err != nil {
			return fmt.Errorf("failed to delete revisions: %w", err)
		}
		if err := tx.Where("content_id = ?", content.ID).Delete(&models.SEOAnalysis{}).Error; err != nil {
			return fmt.Errorf("failed to delete analyses: %w", err)
		}
		return tx.Delete(content).Error
	})
}

// Stats aggregates draft counts, scores and word totals for a user
func (r *contentRepository) Stats(userID uuid.UUID) (*ContentStats, error) {
	stats := &ContentStats{}

	row := r.DB.Model(&models.Content{}).
		Where("user_id = ?", userID).
		Select("COUNT(*)",
			"COALESCE(AVG(current_seo_score), 0)",
			"COALESCE(SUM(word_count), 0)").
		Row()
	if err := row.Scan(&stats.TotalDrafts, &stats.AvgSEOScore, &stats.TotalWords); err != nil {
		return nil, fmt.Errorf("failed to aggregate content stats: %w", err)
	}

	statusCounts := []struct {
		Status models.ContentStatus
		Count  int64
	}{}
	if err := r.DB.Model(&models.Content{}).
		Where("user_id = ?", userID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	for _, sc := range statusCounts {
		switch sc.Status {
		case models.StatusDraft:
			stats.DraftCount = sc.Count
		case models.StatusOptimized:
			stats.OptimizedCount = sc.Count
		case models.StatusPublished:
			stats.PublishedCount = sc.Count
		}
	}

	return stats, nil
}

// RecentByUser returns the most recently updated drafts for a user
func (r *contentRepository) RecentByUser(userID uuid.UUID, limit int) ([]*models.Content, error) {
	var contents []*models.Content
	err := r.DB.Where("user_id = ?", userID).
		Select("id", "title", "current_seo_score", "updated_at").
		Order("updated_at DESC").
		Limit(limit).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}
