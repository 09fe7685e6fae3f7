// Package simulateday реализует HTTP-обработчик запуска дневной симуляции.
//
// Handler извлекает UUID пользователя из URL, запускает прогон через сервис
// и возвращает превью всех сообщений прогона вместе с идентификаторами
// записей журнала. Сбои доставки не считаются ошибкой запроса: они видны
// в поле is_sent каждого превью.
package simulateday

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/bizzytext/goalcontract/internal/http/response"
	"github.com/bizzytext/goalcontract/internal/lib/sl"
	simulation "github.com/bizzytext/goalcontract/internal/services/simulation"
	"github.com/bizzytext/goalcontract/internal/storage"
)

// Handler управляет HTTP-запросами на запуск симуляции.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики симуляции
}

// Service описывает интерфейс бизнес-логики прогона симуляции.
type Service interface {
	Run(ctx context.Context, userUID string) (*simulation.RunResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Запустить дневную симуляцию
// @Description Генерирует и отправляет все сообщения дня для пользователя, пишет журнал и возвращает превью.
// @Tags Simulation
// @Produce  json
// @Param id path string true "UUID пользователя"
// @Success 200 {object} response.Response "Прогон завершён, превью в ответе"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 400 {object} response.ErrorResponse "У пользователя нет цели или некорректный UUID в URL"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при прогоне"
// @Router /simulate-day/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.simulation.simulateday"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "id")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("id must be a valid UUID"))
		return
	}

	result, err := h.service.Run(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			log.Warn("user not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, storage.ErrGoalNotFound):
			log.Warn("user has no goal", slog.String("uid", uid))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("user has no goal"))
		default:
			log.Error("simulation run failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not run simulation"))
		}
		return
	}

	log.Info("success to run simulation",
		slog.String("uid", uid), slog.Int("slots", len(result.Previews)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_full_name":     result.UserFullName,
		"messages":           result.Previews,
		"logged_message_ids": result.LoggedIDs,
	}))
}
