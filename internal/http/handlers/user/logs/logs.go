// Package logs реализует HTTP-обработчик списка записей журнала пользователя.
package logs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/bizzytext/goalcontract/internal/http/response"
	"github.com/bizzytext/goalcontract/internal/lib/sl"
	"github.com/bizzytext/goalcontract/internal/models"
	"github.com/bizzytext/goalcontract/internal/storage"
)

// Handler обрабатывает запросы на чтение журнала отправленных сообщений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики чтения журнала
}

// Service описывает интерфейс бизнес-логики чтения журнала.
type Service interface {
	Logs(ctx context.Context, uid string, date *time.Time) ([]*models.DailyLog, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить журнал сообщений пользователя
// @Description Возвращает записи журнала, при параметре date — за одну дату.
// @Tags Users
// @Produce  json
// @Param id path string true "UUID пользователя"
// @Param date query string false "Дата в формате 2006-01-02"
// @Success 200 {object} response.Response "Список записей"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.logs"

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

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse date from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("date must be in 2006-01-02 format"))
			return
		}
		date = &parsed
	}

	entries, err := h.service.Logs(r.Context(), uid, date)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to list daily logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list daily logs"))
		return
	}

	log.Info("success to list daily logs", slog.String("uid", uid), slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logs": entries,
	}))
}
