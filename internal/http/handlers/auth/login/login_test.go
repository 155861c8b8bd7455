package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sole-app/sole-backend/internal/models"
	"github.com/sole-app/sole-backend/internal/services/user"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	storedUser := &models.User{ID: 7, Username: "testuser", Email: "test@example.com"}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешный вход",
			requestBody: Request{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return("access-token", storedUser, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"access-token"`,
		},
		{
			name:        "неверные учётные данные",
			requestBody: Request{Email: "test@example.com", Password: "wrongpass"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "wrongpass").
					Return("", nil, user.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid email or password"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    Request{Email: "not-an-email", Password: ""},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return("", nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to login"`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
