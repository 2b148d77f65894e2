package middleware

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	r.keys[key.Key+"/"+key.UserID.String()] = key
	return nil
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[key+"/"+userID.String()], nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

type idempotencyHarness struct {
	router       *gin.Engine
	repo         *fakeIdempotencyRepo
	userID       uuid.UUID
	handlerCalls int
}

func newIdempotencyHarness() *idempotencyHarness {
	gin.SetMode(gin.TestMode)

	h := &idempotencyHarness{
		repo:   newFakeIdempotencyRepo(),
		userID: uuid.New(),
	}

	h.router = gin.New()
	h.router.Use(func(c *gin.Context) {
		c.Set("user_id", h.userID)
		c.Next()
	})
	h.router.POST("/grns",
		IdempotencyRequired(IdempotencyConfig{Repo: h.repo}),
		func(c *gin.Context) {
			h.handlerCalls++
			c.JSON(201, gin.H{"success": true, "message": "Goods received"})
		})

	return h
}

func (h *idempotencyHarness) post(key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/grns", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiredReplaysDuplicateKey(t *testing.T) {
	h := newIdempotencyHarness()

	first := h.post("key-1")
	require.Equal(t, 201, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, h.handlerCalls)

	second := h.post("key-1")
	require.Equal(t, 201, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Contains(t, second.Body.String(), "Goods received")

	// The handler must not run again for the replay
	assert.Equal(t, 1, h.handlerCalls)
}

func TestIdempotencyRequiredDistinctKeysProcessSeparately(t *testing.T) {
	h := newIdempotencyHarness()

	h.post("key-1")
	h.post("key-2")
	assert.Equal(t, 2, h.handlerCalls)
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	h := newIdempotencyHarness()

	w := h.post("")
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Idempotency-Key header is required")
	assert.Equal(t, 0, h.handlerCalls)
}

func TestIdempotencyRequiredExpiredKeyProcessesAgain(t *testing.T) {
	h := newIdempotencyHarness()

	require.NoError(t, h.repo.Create(context.Background(), &entity.IdempotencyKey{
		Key:          "key-1",
		UserID:       h.userID,
		ResponseCode: 201,
		ResponseBody: `{"success":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}))

	w := h.post("key-1")
	assert.Equal(t, 201, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, h.handlerCalls)
}

func TestIdempotencyRequiredRejectsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/grns",
		IdempotencyRequired(IdempotencyConfig{Repo: newFakeIdempotencyRepo()}),
		func(c *gin.Context) {
			c.JSON(201, gin.H{"success": true})
		})

	req := httptest.NewRequest("POST", "/grns", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}
