package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"landmark-catalog/internal/models"
	"landmark-catalog/internal/repository"
	"landmark-catalog/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct {
	repository.LandmarkRepository
}

func (failingRepository) Count(ctx context.Context) (int64, error) {
	return 0, assert.AnError
}

func (failingRepository) Kind() string {
	return "postgres"
}

func TestHealthHandler(t *testing.T) {
	repo := repository.NewMemoryLandmarkRepository()
	require.NoError(t, repo.Append(context.Background(), models.Landmark{ID: "1"}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	cache := services.NewRedisCacheServiceWithClient(client)

	tests := []struct {
		name           string
		handler        *HealthHandler
		before         func()
		expectedStatus int
		expected       map[string]interface{}
	}{
		{
			name:           "memory store without cache",
			handler:        NewHealthHandler(repo, nil),
			expectedStatus: http.StatusOK,
			expected:       map[string]interface{}{"status": "ok", "store": "memory", "landmarks": float64(1), "cache": "disabled"},
		},
		{
			name:           "healthy cache",
			handler:        NewHealthHandler(repo, cache),
			expectedStatus: http.StatusOK,
			expected:       map[string]interface{}{"status": "ok", "store": "memory", "landmarks": float64(1), "cache": "healthy"},
		},
		{
			name:           "store failure",
			handler:        NewHealthHandler(failingRepository{}, nil),
			expectedStatus: http.StatusServiceUnavailable,
			expected:       map[string]interface{}{"status": "degraded", "store": "postgres", "landmarks": float64(0), "cache": "disabled"},
		},
		{
			name:           "unreachable cache",
			handler:        NewHealthHandler(repo, cache),
			before:         mr.Close,
			expectedStatus: http.StatusOK,
			expected:       map[string]interface{}{"status": "ok", "store": "memory", "landmarks": float64(1), "cache": "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.before != nil {
				tt.before()
			}

			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w).(map[string]interface{})
			assert.NotEmpty(t, body["uptime"])
			delete(body, "uptime")
			assert.Equal(t, tt.expected, body)
		})
	}
}
