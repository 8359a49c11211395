// Package list реализует HTTP-обработчик для получения всех событий пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/http/response"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// Handler управляет HTTP-запросами на получение списка событий.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списков событий
}

// Service описывает интерфейс бизнес-логики списка событий.
type Service interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список событий пользователя
// @Description Возвращает все активные события текущего пользователя.
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "Список событий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
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

	events, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list events"))
		return
	}

	log.Info("listed events", slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(events))
}
