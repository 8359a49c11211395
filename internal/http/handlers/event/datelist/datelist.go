// Package datelist реализует HTTP-обработчик для получения одноразовых событий
// пользователя на календарную дату.
package datelist

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

// Handler управляет HTTP-запросами на получение событий на дату.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списков событий
}

// Service описывает интерфейс бизнес-логики событий на дату.
type Service interface {
	ListByDate(ctx context.Context, userID, rawDate string) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary События на дату
// @Description Возвращает одноразовые события текущего пользователя на дату в формате 2006-01-02.
// @Tags Events
// @Produce  json
// @Param date path string true "Дата в формате 2006-01-02"
// @Success 200 {object} map[string]any "Список событий"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/date/{date} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.datelist"
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

	date := chi.URLParam(r, "date")
	events, err := h.service.ListByDate(r.Context(), userID, date)
	if err != nil {
		log.Error("failed to list events by date", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list events by date"))
		return
	}

	log.Info("listed events by date", slog.String("date", date), slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(events))
}
