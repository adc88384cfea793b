package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
)

// fakeStatsCache mirrors the redis wrapper's GetCached semantics over a map
type fakeStatsCache struct {
	store map[string][]byte
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{store: make(map[string][]byte)}
}

func (f *fakeStatsCache) GetCached(key string, dest interface{}, ttl time.Duration, provider func() (interface{}, error)) error {
	if data, ok := f.store[key]; ok {
		return json.Unmarshal(data, dest)
	}
	v, err := provider()
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.store[key] = data
	return json.Unmarshal(data, dest)
}

func (f *fakeStatsCache) Delete(key string) error {
	delete(f.store, key)
	return nil
}

// fakeContentRepo covers the methods the handlers under test reach.
// Anything else panics through the nil embedded interface.
type fakeContentRepo struct {
	repository.ContentRepository
	content     *models.Content
	statsCalls  int
	updateCalls int
	failUpdate  int // fail Update calls numbered >= this, 0 = never
}

func (f *fakeContentRepo) FindByIDAndUser(id, userID uuid.UUID) (*models.Content, error) {
	if f.content == nil || f.content.ID != id || f.content.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.content, nil
}

func (f *fakeContentRepo) Stats(userID uuid.UUID) (*repository.ContentStats, error) {
	f.statsCalls++
	return &repository.ContentStats{TotalDrafts: 3, AvgSEOScore: 71.5, DraftCount: 2, OptimizedCount: 1}, nil
}

func (f *fakeContentRepo) RecentByUser(userID uuid.UUID, limit int) ([]*models.Content, error) {
	return []*models.Content{f.content}, nil
}

func (f *fakeContentRepo) DeleteCascade(content *models.Content) error {
	return nil
}

func (f *fakeContentRepo) Update(entity interface{}) error {
	f.updateCalls++
	if f.failUpdate != 0 && f.updateCalls >= f.failUpdate {
		return gorm.ErrInvalidDB
	}
	return nil
}

func newContentTestApp(h *ContentHandler, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Get("/stats", h.GetStats)
	app.Delete("/:id", h.DeleteContent)
	return app
}

func TestGetStatsServesSecondRequestFromCache(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	repo := &fakeContentRepo{content: &models.Content{ID: uuid.New(), UserID: userID, Title: "Draft"}}
	h := NewContentHandler(repo, nil, newFakeStatsCache())
	app := newContentTestApp(h, userID)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
		assert.NoError(err)
		assert.Equal(fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(1, repo.statsCalls)
}

func TestGetStatsPayloadSurvivesCacheRoundTrip(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	repo := &fakeContentRepo{content: &models.Content{ID: uuid.New(), UserID: userID, Title: "Draft"}}
	h := NewContentHandler(repo, nil, newFakeStatsCache())
	app := newContentTestApp(h, userID)

	// Second request reads the cached payload
	app.Test(httptest.NewRequest("GET", "/stats", nil))
	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
	assert.NoError(err)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Stats repository.ContentStats `json:"stats"`
		} `json:"data"`
	}
	assert.NoError(json.NewDecoder(resp.Body).Decode(&body))
	assert.True(body.Success)
	assert.Equal(int64(3), body.Data.Stats.TotalDrafts)
	assert.Equal(71.5, body.Data.Stats.AvgSEOScore)
}

func TestDeleteContentInvalidatesStatsCache(t *testing.T) {
	assert := assert.New(t)

	userID := uuid.New()
	contentID := uuid.New()
	repo := &fakeContentRepo{content: &models.Content{ID: contentID, UserID: userID, Title: "Draft"}}
	h := NewContentHandler(repo, nil, newFakeStatsCache())
	app := newContentTestApp(h, userID)

	app.Test(httptest.NewRequest("GET", "/stats", nil))
	assert.Equal(1, repo.statsCalls)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/"+contentID.String(), nil))
	assert.NoError(err)
	assert.Equal(fiber.StatusOK, resp.StatusCode)

	// Stats are recomputed after the delete dropped the cache entry
	app.Test(httptest.NewRequest("GET", "/stats", nil))
	assert.Equal(2, repo.statsCalls)
}
