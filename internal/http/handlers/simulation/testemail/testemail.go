// Package testemail реализует HTTP-обработчик отправки проверочного письма.
package testemail

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

// Handler обрабатывает запросы на отправку проверочного письма пользователю.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики отправки
}

// Service описывает интерфейс отправки проверочного письма.
type Service interface {
	SendTest(ctx context.Context, userUID string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отправить проверочное письмо
// @Description Отправляет пользователю тестовое письмо без генерации и записи журнала.
// @Tags Simulation
// @Produce  json
// @Param id path string true "UUID пользователя"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 400 {object} response.ErrorResponse "У пользователя нет адреса почты"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки"
// @Router /send-test-email/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.simulation.testemail"

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

	ref, err := h.service.SendTest(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			log.Warn("user not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, simulation.ErrNoEmail):
			log.Warn("user has no email address", slog.String("uid", uid))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("user has no email address"))
		default:
			log.Error("failed to send test email", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not send test email"))
		}
		return
	}

	log.Info("success to send test email", slog.String("uid", uid), slog.String("ref", ref))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"reference": ref,
	}))
}
