package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babygoats/BabyGoats_Go/internal/user"
	"github.com/babygoats/BabyGoats_Go/internal/worker"
)

// MockRolloverRunner mocks the RolloverRunner interface
type MockRolloverRunner struct {
	mock.Mock
}

func (m *MockRolloverRunner) RunNow(ctx context.Context) (*worker.RolloverResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.RolloverResult), args.Error(1)
}

func TestHandleTriggerRollover_Success(t *testing.T) {
	runner := &MockRolloverRunner{}
	h := NewAdminRolloverHandler(runner)

	runner.On("RunNow", mock.Anything).Return(&worker.RolloverResult{
		Day:            "2026-08-25",
		ChallengeCount: 3,
		StreaksReset:   7,
	}, nil)

	req := httptest.NewRequest("POST", "/api/v1/admin/rollover", nil)
	w := httptest.NewRecorder()

	h.HandleTriggerRollover(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"streaks_reset":7`)
	assert.Contains(t, w.Body.String(), `"day":"2026-08-25"`)
	runner.AssertExpectations(t)
}

func TestHandleTriggerRollover_ServiceError(t *testing.T) {
	runner := &MockRolloverRunner{}
	h := NewAdminRolloverHandler(runner)

	runner.On("RunNow", mock.Anything).Return(nil, errors.New("database error"))

	req := httptest.NewRequest("POST", "/api/v1/admin/rollover", nil)
	w := httptest.NewRecorder()

	h.HandleTriggerRollover(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, w.Body.String(), ErrMsgRolloverFailed)
	runner.AssertExpectations(t)
}

func TestHandleGetCacheStats(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedStats  user.CacheStats
	}{
		{
			name: "Success",
			setupMock: func(m *MockUserService) {
				stats := user.CacheStats{
					Hits:   100,
					Misses: 50,
					Size:   500,
				}
				m.On("GetCacheStats").Return(stats)
			},
			expectedStatus: http.StatusOK,
			expectedStats: user.CacheStats{
				Hits:   100,
				Misses: 50,
				Size:   500,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserService := &MockUserService{}
			tt.setupMock(mockUserService)

			handler := NewAdminCacheHandler(mockUserService)

			req := httptest.NewRequest("GET", "/api/v1/admin/cache/stats", nil)
			w := httptest.NewRecorder()

			handler.HandleGetCacheStats(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response user.CacheStats
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStats.Hits, response.Hits)
			assert.Equal(t, tt.expectedStats.Misses, response.Misses)
			assert.Equal(t, tt.expectedStats.Size, response.Size)

			mockUserService.AssertExpectations(t)
		})
	}
}
