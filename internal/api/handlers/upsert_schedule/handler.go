package upsert_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules/models"
)

const (
	msgInvalidCarWashID   = "некорректный ID автомойки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidSchedule    = "некорректное расписание, ожидается время HH:MM и день недели 0-6"
	msgCarWashNotFound    = "автомойка не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/car_washes/{carWashId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carWashID, err := handlers.PathID(r, "carWashId")
	if err != nil {
		h.logger.Warn("PUT /car_washes/{id}/schedules - Invalid car wash ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarWashID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /car_washes/{id}/schedules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /car_washes/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), actor, carWashID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PUT /car_washes/{id}/schedules - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /car_washes/{id}/schedules - Invalid schedule: car_wash_id=%d, error=%v", carWashID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedules.ErrCarWashNotFound):
			h.logger.Warn("PUT /car_washes/{id}/schedules - Car wash not found: car_wash_id=%d", carWashID)
			handlers.RespondNotFound(w, msgCarWashNotFound)

		default:
			h.logger.Error("PUT /car_washes/{id}/schedules - Failed to save schedule: car_wash_id=%d, error=%v",
				carWashID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /car_washes/{id}/schedules - Schedule saved successfully: car_wash_id=%d, day=%d, schedule_id=%d",
		carWashID, result.DayOfWeek, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
