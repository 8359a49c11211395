// Package daylist реализует HTTP-обработчик для получения еженедельных событий
// пользователя на день недели.
package daylist

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

// Handler управляет HTTP-запросами на получение событий на день недели.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списков событий
}

// Service описывает интерфейс бизнес-логики событий на день недели.
type Service interface {
	ListByWeekday(ctx context.Context, userID, rawDay string) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary События на день недели
// @Description Возвращает еженедельные события текущего пользователя, действующие в указанный день недели.
// @Tags Events
// @Produce  json
// @Param day path string true "День недели, например MONDAY"
// @Success 200 {object} map[string]any "Список событий"
// @Failure 400 {object} response.ErrorResponse "Некорректный день недели"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/day/{day} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.daylist"
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

	day := chi.URLParam(r, "day")
	events, err := h.service.ListByWeekday(r.Context(), userID, day)
	if err != nil {
		log.Error("failed to list events by weekday", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list events by weekday"))
		return
	}

	log.Info("listed events by weekday", slog.String("day", day), slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(events))
}
