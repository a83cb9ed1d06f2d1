package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	infraRepo "github.com/sparetrack/sparetrack-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	calls := 0
	userID := uuid.New()

	router := gin.New()
	router.POST("/pay",
		func(c *gin.Context) { c.Set("user_id", userID) },
		Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"call": strconv.Itoa(calls)})
		},
	)
	return router, &calls
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/pay", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(first, req)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, *calls)

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/pay", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(second, req)

	// The handler must not run again; the cached body comes back verbatim.
	assert.Equal(t, 1, *calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotency_DistinctKeysRunIndependently(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	for i, key := range []string{"key-1", "key-2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pay", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		require.Equal(t, i+1, *calls)
	}
}

func TestIdempotency_MissingKeyPassesThrough(t *testing.T) {
	router, calls := newIdempotencyRouter(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/pay", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 2, *calls)
}
