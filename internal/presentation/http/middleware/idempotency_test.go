package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memIdempotencyRepo struct {
	mu      sync.Mutex
	keys    map[string]*entity.IdempotencyKey
	now     func() time.Time
	deletes int
}

func newMemIdempotencyRepo(now func() time.Time) *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey), now: now}
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key, clientID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[clientID+"|"+key], nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.ClientID+"|"+ikey.Key] = ikey
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	var n int64
	for k, v := range r.keys {
		if v.IsExpiredAt(r.now()) {
			delete(r.keys, k)
			n++
		}
	}
	return n, nil
}

func newIdempotentRouter(repo *memIdempotencyRepo, now func() time.Time, status int) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.POST("/orders", Idempotency(IdempotencyConfig{Repo: repo, Now: now}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})
	return r, &calls
}

func postOrder(r http.Handler, key, clientID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	if clientID != "" {
		req.Header.Set(ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("replays the first response", func(t *testing.T) {
		repo := newMemIdempotencyRepo(clock)
		r, calls := newIdempotentRouter(repo, clock, http.StatusCreated)

		first := postOrder(r, "abc", "tablet-1")
		second := postOrder(r, "abc", "tablet-1")

		assert.Equal(t, 1, *calls)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	})

	t.Run("keys are scoped per client", func(t *testing.T) {
		repo := newMemIdempotencyRepo(clock)
		r, calls := newIdempotentRouter(repo, clock, http.StatusCreated)

		postOrder(r, "abc", "tablet-1")
		postOrder(r, "abc", "tablet-2")
		assert.Equal(t, 2, *calls)
	})

	t.Run("without a key every request runs", func(t *testing.T) {
		repo := newMemIdempotencyRepo(clock)
		r, calls := newIdempotentRouter(repo, clock, http.StatusCreated)

		postOrder(r, "", "tablet-1")
		postOrder(r, "", "tablet-1")
		assert.Equal(t, 2, *calls)
		assert.Empty(t, repo.keys)
	})

	t.Run("failures are not stored", func(t *testing.T) {
		repo := newMemIdempotencyRepo(clock)
		r, calls := newIdempotentRouter(repo, clock, http.StatusUnprocessableEntity)

		postOrder(r, "abc", "tablet-1")
		postOrder(r, "abc", "tablet-1")
		assert.Equal(t, 2, *calls)
		assert.Empty(t, repo.keys)
	})

	t.Run("expired keys run again", func(t *testing.T) {
		current := now
		moving := func() time.Time { return current }
		repo := newMemIdempotencyRepo(moving)
		r, calls := newIdempotentRouter(repo, moving, http.StatusCreated)

		postOrder(r, "abc", "tablet-1")
		current = current.Add(IdempotencyKeyTTL + time.Minute)
		w := postOrder(r, "abc", "tablet-1")

		assert.Equal(t, 2, *calls)
		assert.Equal(t, 1, repo.deletes)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	})

	t.Run("oversized key", func(t *testing.T) {
		repo := newMemIdempotencyRepo(clock)
		r, calls := newIdempotentRouter(repo, clock, http.StatusCreated)

		w := postOrder(r, strings.Repeat("k", 256), "tablet-1")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, *calls)
	})
}

func TestPurgeExpiredIdempotencyKeys(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	repo := newMemIdempotencyRepo(func() time.Time { return now })
	repo.keys["tablet-1|old"] = &entity.IdempotencyKey{Key: "old", ClientID: "tablet-1", ExpiresAt: now.Add(-time.Hour)}
	repo.keys["tablet-1|live"] = &entity.IdempotencyKey{Key: "live", ClientID: "tablet-1", ExpiresAt: now.Add(time.Hour)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		PurgeExpiredIdempotencyKeys(ctx, repo, 5*time.Millisecond, zerolog.Nop())
		close(done)
	}()

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.keys) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Contains(t, repo.keys, "tablet-1|live")
}
