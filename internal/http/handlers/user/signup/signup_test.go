package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/storage"
)

// MockService реализует интерфейс signup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Signup(ctx context.Context, req models.DummySignup) (*models.UserWithGoal, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.UserWithGoal), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{
	"full_name": "Alex Doe",
	"email": "alex@example.com",
	"timezone": "America/New_York",
	"notification_preference": "both",
	"daily_start_time": "08:00",
	"daily_end_time": "22:00",
	"trigger_type": "time",
	"trigger_time": "07:30",
	"tone": "drill sergeant",
	"buddy_name": "Coach",
	"goal": {"goal_text": "run a marathon", "goal_duration_type": "fixed", "goal_duration_value": "2025-06-01"}
}`

func TestSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: validBody,
			setupMock: func(m *MockService) {
				created := &models.UserWithGoal{
					User: models.User{UID: "abc-123", FullName: "Alex Doe", Email: "alex@example.com"},
					Goal: models.Goal{ID: 1, Description: "run a marathon"},
				}
				m.On("Signup", mock.Anything, mock.Anything).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"full_name":"Alex Doe"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"full_name":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "отсутствуют обязательные поля",
			body:           `{"full_name": "Alex Doe"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "email уже зарегистрирован",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return(nil, storage.ErrEmailExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `email already registered`,
		},
		{
			name: "ошибка сервиса",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Signup", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create user`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
