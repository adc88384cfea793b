package revision

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

// fakeStore is an in-memory Store for exercising the chain without a
// database
type fakeStore struct {
	revs []*models.Revision
}

func (s *fakeStore) CountByContent(contentID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range s.revs {
		if r.ContentID == contentID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) AppendNext(rev *models.Revision) error {
	count, _ := s.CountByContent(rev.ContentID)
	rev.Version = int(count) + 1
	rev.ID = uuid.New()
	s.revs = append(s.revs, rev)
	return nil
}

func (s *fakeStore) FindByID(id uuid.UUID) (*models.Revision, error) {
	for _, r := range s.revs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ListByContent(contentID uuid.UUID) ([]models.Revision, error) {
	var out []models.Revision
	for _, r := range s.revs {
		if r.ContentID == contentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func newDraft() *models.Content {
	return &models.Content{
		ID:              uuid.New(),
		Title:           "Original title",
		Content:         "original body text",
		CurrentSEOScore: 40,
		WordCount:       3,
	}
}

func TestAppendAssignsDenseVersions(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)
	content := newDraft()

	r1, err := chain.Append(content, "Initial draft created")
	assert.NoError(err)
	assert.Equal(1, r1.Version)

	r2, err := chain.Append(content, "")
	assert.NoError(err)
	assert.Equal(2, r2.Version)
	assert.Equal("Content updated", r2.Changes)

	r3, err := chain.Append(content, "edited intro")
	assert.NoError(err)
	assert.Equal(3, r3.Version)

	// Another draft's chain starts over at 1
	other := newDraft()
	o1, err := chain.Append(other, "")
	assert.NoError(err)
	assert.Equal(1, o1.Version)
}

func TestAppendSnapshotsDraftState(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)
	content := newDraft()

	rev, err := chain.Append(content, "snapshot")
	assert.NoError(err)
	assert.Equal(content.ID, rev.ContentID)
	assert.Equal(content.Title, rev.Title)
	assert.Equal(content.Content, rev.Content)
	assert.Equal(content.CurrentSEOScore, rev.SEOScore)
	assert.Equal(content.WordCount, rev.WordCount)
}

func TestRestoreFromAppendsAndMutates(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)
	content := newDraft()

	first, err := chain.Append(content, "Initial draft created")
	assert.NoError(err)

	content.Title = "Edited title"
	content.Content = "edited body with more words"
	content.CurrentSEOScore = 70
	content.WordCount = 5
	_, err = chain.Append(content, "edit")
	assert.NoError(err)

	rev, err := chain.RestoreFrom(content, first.ID)
	assert.NoError(err)

	// Exactly one new revision, recorded before the draft mutates
	assert.Equal(3, rev.Version)
	assert.Equal("Restored from version 1", rev.Changes)

	assert.Equal("Original title", content.Title)
	assert.Equal("original body text", content.Content)
	assert.Equal(40, content.CurrentSEOScore)

	revs, err := chain.List(content.ID)
	assert.NoError(err)
	assert.Len(revs, 3)
	assert.Equal(3, revs[0].Version)
}

func TestRestoreFromRejectsForeignRevision(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)

	content := newDraft()
	other := newDraft()
	foreign, err := chain.Append(other, "")
	assert.NoError(err)

	_, err = chain.RestoreFrom(content, foreign.ID)
	assert.ErrorIs(err, ErrNotFound)
	// Draft untouched on failure
	assert.Equal("Original title", content.Title)
}

func TestCompareDifferences(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)
	content := newDraft()

	a, err := chain.Append(content, "")
	assert.NoError(err)

	content.CurrentSEOScore = 75
	content.WordCount = 10
	b, err := chain.Append(content, "")
	assert.NoError(err)

	cmp, err := chain.Compare(a.ID, b.ID)
	assert.NoError(err)
	assert.Equal(a.ID, cmp.RevisionA.ID)
	assert.Equal(b.ID, cmp.RevisionB.ID)
	assert.Equal(35, cmp.Differences.ScoreChange)
	assert.Equal(7, cmp.Differences.WordCountChange)

	// Swapping arguments negates the differences
	rev, err := chain.Compare(b.ID, a.ID)
	assert.NoError(err)
	assert.Equal(-35, rev.Differences.ScoreChange)
	assert.Equal(-7, rev.Differences.WordCountChange)
}

func TestCompareAcrossContentsFails(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)

	a, err := chain.Append(newDraft(), "")
	assert.NoError(err)
	b, err := chain.Append(newDraft(), "")
	assert.NoError(err)

	_, err = chain.Compare(a.ID, b.ID)
	assert.ErrorIs(err, ErrInvalidComparison)
}

func TestCompareUnknownRevision(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)

	a, err := chain.Append(newDraft(), "")
	assert.NoError(err)

	_, err = chain.Compare(a.ID, uuid.New())
	assert.ErrorIs(err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	assert := assert.New(t)

	store := &fakeStore{}
	chain := NewChain(store)
	content := newDraft()

	for i := 0; i < 4; i++ {
		_, err := chain.Append(content, "")
		assert.NoError(err)
	}

	revs, err := chain.List(content.ID)
	assert.NoError(err)
	assert.Len(revs, 4)
	for i, rev := range revs {
		assert.Equal(4-i, rev.Version)
	}
}
