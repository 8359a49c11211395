package create

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

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, req models.DummyEvent) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное создание события",
			body:   `{"title":"Приём у врача","recurrence":"SINGLE","event_date":"2025-09-10","event_time":"10:00","notify":true,"notification_type":"EMAIL"}`,
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "1", mock.Anything).Return("42", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"42"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"title":`,
			userID:         "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "отсутствует обязательное поле",
			body:           `{"recurrence":"SINGLE"}`,
			userID:         "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Title is a required field`,
		},
		{
			name:           "недопустимый вид повторения",
			body:           `{"title":"Событие","recurrence":"DAILY"}`,
			userID:         "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Recurrence must be one of`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"title":"Событие","recurrence":"SINGLE","event_date":"2025-09-10"}`,
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:   "нарушение правил события",
			body:   `{"title":"Событие","recurrence":"WEEKLY"}`,
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "1", mock.Anything).
					Return("", models.ErrMissingWeekdays)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `could not create event`,
		},
		{
			name:   "конфликт при создании",
			body:   `{"title":"Событие","recurrence":"SINGLE","event_date":"2025-09-10"}`,
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "1", mock.Anything).
					Return("", errs.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `could not create event`,
		},
		{
			name:   "внутренняя ошибка сервиса",
			body:   `{"title":"Событие","recurrence":"SINGLE","event_date":"2025-09-10"}`,
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "1", mock.Anything).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create event`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			if tt.userID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, tt.userID)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
