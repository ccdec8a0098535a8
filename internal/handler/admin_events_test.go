package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/babygoats/BabyGoats_Go/internal/eventlog"
)

func TestHandleGetEvents(t *testing.T) {
	userID := "user-1"
	created := time.Date(2026, 8, 24, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockEventLogService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success - Default Limit",
			target: "/api/v1/admin/events",
			setupMock: func(m *MockEventLogService) {
				m.On("GetEvents", mock.Anything, mock.MatchedBy(func(f eventlog.EventFilter) bool {
					return f.Limit == eventlog.DefaultQueryLimit && f.UserID == nil
				})).Return([]eventlog.Event{
					{ID: 1, EventType: "activity.recorded", UserID: &userID, CreatedAt: created},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"event_type":"activity.recorded"`,
		},
		{
			name:   "Success - Filtered",
			target: "/api/v1/admin/events?user_id=user-1&event_type=level.up&limit=5",
			setupMock: func(m *MockEventLogService) {
				m.On("GetEvents", mock.Anything, mock.MatchedBy(func(f eventlog.EventFilter) bool {
					return f.Limit == 5 && f.UserID != nil && *f.UserID == "user-1" &&
						f.EventType != nil && *f.EventType == "level.up"
				})).Return([]eventlog.Event{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"events":[]`,
		},
		{
			name:   "Success - Time Window",
			target: "/api/v1/admin/events?since=2026-08-20T00:00:00Z&until=2026-08-25T00:00:00Z",
			setupMock: func(m *MockEventLogService) {
				m.On("GetEvents", mock.Anything, mock.MatchedBy(func(f eventlog.EventFilter) bool {
					return f.Since != nil && f.Until != nil && f.Until.After(*f.Since)
				})).Return([]eventlog.Event{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"events":[]`,
		},
		{
			name:           "Invalid Since Timestamp",
			target:         "/api/v1/admin/events?since=yesterday",
			setupMock:      func(m *MockEventLogService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid 'since' timestamp",
		},
		{
			name:           "Invalid Limit - Too Large",
			target:         "/api/v1/admin/events?limit=5000",
			setupMock:      func(m *MockEventLogService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid 'limit'",
		},
		{
			name:           "Invalid Limit - Zero",
			target:         "/api/v1/admin/events?limit=0",
			setupMock:      func(m *MockEventLogService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid 'limit'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockEventLogService{}
			tt.setupMock(mockSvc)

			h := NewAdminEventsHandler(mockSvc)

			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()

			h.HandleGetEvents(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleCleanupEvents(t *testing.T) {
	InitValidator()

	t.Run("Default Retention", func(t *testing.T) {
		mockSvc := &MockEventLogService{}
		mockSvc.On("CleanupOldEvents", mock.Anything, eventlog.DefaultRetentionDays).
			Return(int64(120), nil)

		h := NewAdminEventsHandler(mockSvc)

		req := httptest.NewRequest("POST", "/api/v1/admin/events/cleanup", nil)
		w := httptest.NewRecorder()

		h.HandleCleanupEvents(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":120`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Custom Retention", func(t *testing.T) {
		mockSvc := &MockEventLogService{}
		mockSvc.On("CleanupOldEvents", mock.Anything, 30).
			Return(int64(300), nil)

		h := NewAdminEventsHandler(mockSvc)

		body := []byte(`{"retention_days":30}`)
		req := httptest.NewRequest("POST", "/api/v1/admin/events/cleanup", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleCleanupEvents(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"retention_days":30`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		mockSvc := &MockEventLogService{}
		mockSvc.On("CleanupOldEvents", mock.Anything, eventlog.DefaultRetentionDays).
			Return(int64(0), assert.AnError)

		h := NewAdminEventsHandler(mockSvc)

		req := httptest.NewRequest("POST", "/api/v1/admin/events/cleanup", nil)
		w := httptest.NewRecorder()

		h.HandleCleanupEvents(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCleanupFailed)
		mockSvc.AssertExpectations(t)
	})
}
