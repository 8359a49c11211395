// Package loglist реализует HTTP-обработчики списков журнала уведомлений:
// по текущему пользователю и по событию.
package loglist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/http/response"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// Handler управляет HTTP-запросами на получение списков журнала.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики уведомлений
}

// Service описывает интерфейс бизнес-логики списков журнала.
type Service interface {
	ListLogsByUser(ctx context.Context, userID string) ([]*models.NotificationLog, error)
	ListLogsByEvent(ctx context.Context, eventID, userID string) ([]*models.NotificationLog, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ByUser godoc
// @Summary Журнал уведомлений пользователя
// @Description Возвращает записи журнала текущего пользователя, новые первыми.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Записи журнала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/logs [get]
func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.loglist.ByUser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	logs, err := h.service.ListLogsByUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list notification logs", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list notification logs"))
		return
	}

	log.Info("listed notification logs", slog.Int("count", len(logs)))
	render.JSON(w, r, response.OKWithData(logs))
}

// ByEvent godoc
// @Summary Журнал уведомлений по событию
// @Description Возвращает записи журнала текущего пользователя по событию, новые первыми.
// @Tags Notifications
// @Produce  json
// @Param eventId path string true "ID события"
// @Success 200 {object} map[string]any "Записи журнала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/logs/event/{eventId} [get]
func (h *Handler) ByEvent(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.loglist.ByEvent"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	eventID := chi.URLParam(r, "eventId")
	logs, err := h.service.ListLogsByEvent(r.Context(), eventID, userID)
	if err != nil {
		log.Error("failed to list notification logs by event", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list notification logs"))
		return
	}

	log.Info("listed notification logs by event",
		slog.String("event_id", eventID), slog.Int("count", len(logs)))
	render.JSON(w, r, response.OKWithData(logs))
}
