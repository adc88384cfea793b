package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/revision"
)

// RevisionRepository persists revisions and implements revision.Store
type RevisionRepository interface {
	revision.Store
	AttachAnalysis(revisionID, analysisID uuid.UUID, score int) error
	LatestByContent(contentID uuid.UUID) (*models.Revision, error)
}

// revisionRepository implements RevisionRepository
type revisionRepository struct {
	*BaseRepository
}

// NewRevisionRepository creates a new revision repository
func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{BaseRepository: NewBaseRepository(db)}
}

// CountByContent counts the revisions of one content item
func (r *revisionRepository) CountByContent(contentID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Revision{}).Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}

// maxVersionAttempts bounds the retries when concurrent appends race for
// the same version number.
const maxVersionAttempts = 3

// retryOnDuplicate runs fn up to attempts times, retrying only when it
// fails with a unique-constraint violation.
func retryOnDuplicate(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return fmt.Errorf("could not assign revision version after %d attempts: %w", attempts, err)
}

// AppendNext assigns the next version number and inserts the revision in a
// single transaction. Two concurrent appends against the same content can
// both read the same count, but the unique index on (content_id, version)
// rejects the loser, which retries with a fresh count.
func (r *revisionRepository) AppendNext(rev *models.Revision) error {
	return retryOnDuplicate(maxVersionAttempts, func() error {
		return r.DB.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Revision{}).
				Where("content_id = ?", rev.ContentID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count revisions: %w", err)
			}
			rev.Version = int(count) + 1
			return tx.Create(rev).Error
		})
	})
}

// FindByID finds a revision by ID
func (r *revisionRepository) FindByID(id uuid.UUID) (*models.Revision, error) {
	var rev models.Revision
	err := r.DB.First(&rev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, revision.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListByContent returns a content item's revisions, newest version first
func (r *revisionRepository) ListByContent(contentID uuid.UUID) ([]models.Revision, error) {
	var revs []models.Revision
	err := r.DB.Where("content_id = ?", contentID).
		Order("version DESC").
		Find(&revs).Error
	if err != nil {
		return nil, err
	}
	return revs, nil
}

// LatestByContent returns the highest-version revision of a content item
func (r *revisionRepository) LatestByContent(contentID uuid.UUID) (*models.Revision, error) {
	var rev models.Revision
	err := r.DB.Where("content_id = ?", contentID).
		Order("version DESC").
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, revision.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// AttachAnalysis links an analysis to a revision after the fact. This is
// the only permitted mutation of an existing revision.
func (r *revisionRepository) AttachAnalysis(revisionID, analysisID uuid.UUID, score int) error {
	return r.DB.Model(&models.Revision{}).
		Where("id = ?", revisionID).
		Updates(map[string]interface{}{
			"analysis_id": analysisID,
			"seo_score":   score,
		}).Error
}
