package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// AnalysisRepository persists SEO analysis results
type AnalysisRepository interface {
	Repository
	FindLatestByContent(contentID uuid.UUID) (*models.SEOAnalysis, error)
	HistoryByContent(contentID uuid.UUID) ([]models.SEOAnalysis, error)
	CountByContent(contentID uuid.UUID) (int64, error)
}

// analysisRepository implements AnalysisRepository
type analysisRepository struct {
	*BaseRepository
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{BaseRepository: NewBaseRepository(db)}
}

// FindLatestByContent returns the most recent analysis for a content item
func (r *analysisRepository) FindLatestByContent(contentID uuid.UUID) (*models.SEOAnalysis, error) {
	var analysis models.SEOAnalysis
	err := r.DB.Where("content_id = ?", contentID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// HistoryByContent returns every analysis of a content item, newest first.
// Only the score fields are selected; the suggestion payloads stay in the
// database until a single analysis is fetched.
func (r *analysisRepository) HistoryByContent(contentID uuid.UUID) ([]models.SEOAnalysis, error) {
	var analyses []models.SEOAnalysis
	err := r.DB.Select("id", "content_id", "overall_score", "scores", "provider_used", "created_at").
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// CountByContent counts analyses run against a content item
func (r *analysisRepository) CountByContent(contentID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.SEOAnalysis{}).Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}
