package update

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Edit(ctx context.Context, id int, req models.DummyEditEvent) (*models.EventWithAttendees, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventWithAttendees), args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	stored := &models.EventWithAttendees{
		ID:        5,
		Title:     "Renamed",
		Start:     time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC),
		Attendees: []models.Attendee{{ID: 3, Name: "carol"}},
	}

	validReq := models.DummyEditEvent{
		Title:     "Renamed",
		Start:     "2026-09-02T10:00:00Z",
		End:       "2026-09-02T11:00:00Z",
		Attendees: []int{3},
	}

	tests := []struct {
		name           string
		url            string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное редактирование",
			url:         "/api/events/5",
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Edit", mock.Anything, 5, mock.AnythingOfType("models.DummyEditEvent")).
					Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Renamed"`,
		},
		{
			name: "пустой список участников допустим",
			url:  "/api/events/5",
			requestBody: models.DummyEditEvent{
				Title:     "Renamed",
				Start:     "2026-09-02T10:00:00Z",
				End:       "2026-09-02T11:00:00Z",
				Attendees: []int{},
			},
			setupMock: func(m *MockService) {
				cleared := &models.EventWithAttendees{ID: 5, Title: "Renamed", Attendees: []models.Attendee{}}
				m.On("Edit", mock.Anything, 5, mock.AnythingOfType("models.DummyEditEvent")).
					Return(cleared, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"attendees":[]`,
		},
		{
			name:           "некорректный id в url",
			url:            "/api/events/abc",
			requestBody:    validReq,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name:           "некорректный JSON",
			url:            "/api/events/5",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:        "событие не найдено",
			url:         "/api/events/999",
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Edit", mock.Anything, 999, mock.Anything).
					Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"failed to update event"`,
		},
		{
			name:        "неизвестный участник",
			url:         "/api/events/5",
			requestBody: validReq,
			setupMock: func(m *MockService) {
				m.On("Edit", mock.Anything, 5, mock.Anything).
					Return(nil, apperr.ErrValidation)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"failed to update event"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/api/events/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
