// Package settingsread реализует HTTP-обработчик чтения настроек уведомлений.
// Если настройки еще не заданы, возвращаются значения по умолчанию.
package settingsread

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

// Handler управляет HTTP-запросами на чтение настроек уведомлений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики уведомлений
}

// Service описывает интерфейс бизнес-логики чтения настроек.
type Service interface {
	GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Настройки уведомлений
// @Description Возвращает настройки уведомлений текущего пользователя,
// дефолты — если настройки еще не заданы.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Настройки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications/settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.settingsread"
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

	settings, err := h.service.GetSettings(r.Context(), userID)
	if err != nil {
		log.Error("failed to read settings", sl.Err(err))
		w.WriteHeader(response.HTTPStatus(err))
		render.JSON(w, r, response.Error("could not read settings"))
		return
	}

	log.Info("read notification settings", slog.String("user_id", userID))
	render.JSON(w, r, response.OKWithData(settings))
}
