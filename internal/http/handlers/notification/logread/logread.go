// Package logread реализует HTTP-обработчик чтения записи журнала уведомлений.
package logread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/http/response"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// Handler управляет HTTP-запросами на чтение записи журнала.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики уведомлений
}

// Service описывает интерфейс бизнес-логики чтения записи журнала.
type Service interface {
	GetLog(ctx context.Context, id string) (*models.NotificationLog, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Запись журнала уведомлений
// @Description Возвращает запись журнала текущего пользователя по идентификатору.
// @Tags Notifications
// @Produce  json
// @Param id path string true "ID записи журнала"
// @Success 200 {object} map[string]any "Запись журнала"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/logs/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.logread"
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

	id := chi.URLParam(r, "id")
	entry, err := h.service.GetLog(r.Context(), id)
	if err == nil && entry.UserID != userID {
		err = errs.ErrNotFound
	}
	if err != nil {
		log.Error("failed to read notification log", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not read notification log"))
		return
	}

	log.Info("read notification log", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(entry))
}
