// Package revision implements the append-only revision chain for content
// drafts: snapshot appends, restore and comparison. History is never
// reordered or rewritten; a restore is itself recorded as a new revision.
package revision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

var (
	// ErrNotFound means the revision does not exist
	ErrNotFound = errors.New("revision not found")
	// ErrInvalidComparison means the two revisions belong to different
	// content items
	ErrInvalidComparison = errors.New("revisions must be from the same content")
)

// Store is the persistence boundary for revisions. AppendNext must assign
// the next dense version number (count+1) and insert atomically, so two
// concurrent appends against the same content cannot claim the same
// version.
type Store interface {
	CountByContent(contentID uuid.UUID) (int64, error)
	AppendNext(rev *models.Revision) error
	FindByID(id uuid.UUID) (*models.Revision, error)
	ListByContent(contentID uuid.UUID) ([]models.Revision, error)
}

// Differences summarizes what changed between two revisions
type Differences struct {
	ScoreChange     int `json:"score_change"`
	WordCountChange int `json:"word_count_change"`
}

// Comparison holds two full snapshots plus their differences. Argument
// order is preserved: differences are B minus A.
type Comparison struct {
	RevisionA   *models.Revision `json:"revision_1"`
	RevisionB   *models.Revision `json:"revision_2"`
	Differences Differences      `json:"differences"`
}

// Chain manages the revision history of content drafts
type Chain struct {
	store Store
}

// NewChain creates a revision chain over the given store
func NewChain(store Store) *Chain {
	return &Chain{store: store}
}

// Append records the draft's current state as the next revision
func (c *Chain) Append(content *models.Content, changes string) (*models.Revision, error) {
	if changes == "" {
		changes = "Content updated"
	}

	rev := &models.Revision{
		ContentID:   content.ID,
		Title:       content.Title,
		Content:     content.Content,
		ContentHTML: content.ContentHTML,
		SEOScore:    content.CurrentSEOScore,
		Changes:     changes,
		WordCount:   content.WordCount,
	}
	if err := c.store.AppendNext(rev); err != nil {
		return nil, fmt.Errorf("failed to append revision: %w", err)
	}
	return rev, nil
}

// RestoreFrom overwrites the draft's editable fields with a past revision's
// snapshot. The restored state is first appended as a new revision so the
// restore appears in history; no existing revision is touched.
func (c *Chain) RestoreFrom(content *models.Content, revisionID uuid.UUID) (*models.Revision, error) {
	target, err := c.store.FindByID(revisionID)
	if err != nil {
		return nil, err
	}
	if target.ContentID != content.ID {
		return nil, ErrNotFound
	}

	rev := &models.Revision{
		ContentID:   content.ID,
		Title:       target.Title,
		Content:     target.Content,
		ContentHTML: target.ContentHTML,
		SEOScore:    target.SEOScore,
		Changes:     fmt.Sprintf("Restored from version %d", target.Version),
		WordCount:   target.WordCount,
	}
	if err := c.store.AppendNext(rev); err != nil {
		return nil, fmt.Errorf("failed to record restore: %w", err)
	}

	content.Title = target.Title
	content.Content = target.Content
	content.ContentHTML = target.ContentHTML
	content.CurrentSEOScore = target.SEOScore

	return rev, nil
}

// Compare returns both snapshots and their differences, B relative to A
func (c *Chain) Compare(aID, bID uuid.UUID) (*Comparison, error) {
	a, err := c.store.FindByID(aID)
	if err != nil {
		return nil, err
	}
	b, err := c.store.FindByID(bID)
	if err != nil {
		return nil, err
	}
	if a.ContentID != b.ContentID {
		return nil, ErrInvalidComparison
	}

	return &Comparison{
		RevisionA: a,
		RevisionB: b,
		Differences: Differences{
			ScoreChange:     b.SEOScore - a.SEOScore,
			WordCountChange: b.WordCount - a.WordCount,
		},
	}, nil
}

// List returns all revisions for a content item, newest version first
func (c *Chain) List(contentID uuid.UUID) ([]models.Revision, error) {
	return c.store.ListByContent(contentID)
}
