package monthlist

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// MockService реализует интерфейс monthlist.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]*models.Event, error) {
	args := m.Called(ctx, userID, year, month)
	if res := args.Get(0); res != nil {
		return res.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMonthListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		year           string
		month          string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешный список за февраль",
			year:   "2024",
			month:  "2",
			userID: "1",
			setupMock: func(m *MockService) {
				events := []*models.Event{{ID: "1", Title: "В феврале"}}
				m.On("ListByMonth", mock.Anything, "1", 2024, time.February).Return(events, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `В феврале`,
		},
		{
			name:           "некорректный год",
			year:           "abcd",
			month:          "2",
			userID:         "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid year`,
		},
		{
			name:           "некорректный месяц",
			year:           "2024",
			month:          "xx",
			userID:         "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid month`,
		},
		{
			name:   "месяц вне диапазона",
			year:   "2024",
			month:  "13",
			userID: "1",
			setupMock: func(m *MockService) {
				m.On("ListByMonth", mock.Anything, "1", 2024, time.Month(13)).
					Return(nil, errs.ErrInvalidArgument)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `could not list events by month`,
		},
		{
			name:           "нет пользователя в контексте",
			year:           "2024",
			month:          "2",
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/events/month/"+tt.year+"/"+tt.month, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("year", tt.year)
			rctx.URLParams.Add("month", tt.month)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
