// Package monthlist реализует HTTP-обработчик для получения одноразовых событий
// пользователя за календарный месяц.
package monthlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/http/response"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// Handler управляет HTTP-запросами на получение событий за месяц.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списков событий
}

// Service описывает интерфейс бизнес-логики событий за месяц.
type Service interface {
	ListByMonth(ctx context.Context, userID string, year int, m time.Month) ([]*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary События за месяц
// @Description Возвращает одноразовые события текущего пользователя за календарный месяц,
// включая первый и последний день месяца.
// @Tags Events
// @Produce  json
// @Param year path int true "Год"
// @Param month path int true "Месяц от 1 до 12"
// @Success 200 {object} map[string]any "Список событий"
// @Failure 400 {object} response.ErrorResponse "Некорректный год или месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/month/{year}/{month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.monthlist"
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

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Error("invalid year", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid year"))
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		log.Error("invalid month", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid month"))
		return
	}

	events, err := h.service.ListByMonth(r.Context(), userID, year, time.Month(monthNum))
	if err != nil {
		log.Error("failed to list events by month", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not list events by month"))
		return
	}

	log.Info("listed events by month",
		slog.Int("year", year), slog.Int("month", monthNum), slog.Int("count", len(events)))
	render.JSON(w, r, response.OKWithData(events))
}
