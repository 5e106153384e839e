package delete_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules"
)

const (
	msgInvalidCarWashID  = "некорректный ID автомойки"
	msgInvalidScheduleID = "некорректный ID расписания"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "расписание не найдено"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/car_washes/{carWashId}/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carWashID, err := handlers.PathID(r, "carWashId")
	if err != nil {
		h.logger.Warn("DELETE /car_washes/{id}/schedules/{id} - Invalid car wash ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarWashID)
		return
	}

	scheduleID, err := handlers.PathID(r, "scheduleId")
	if err != nil {
		h.logger.Warn("DELETE /car_washes/{id}/schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /car_washes/{id}/schedules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, carWashID, scheduleID); err != nil {
		switch {
		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("DELETE /car_washes/{id}/schedules/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("DELETE /car_washes/{id}/schedules/{id} - Schedule not found: car_wash_id=%d, schedule_id=%d",
				carWashID, scheduleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /car_washes/{id}/schedules/{id} - Failed to delete schedule: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /car_washes/{id}/schedules/{id} - Schedule deleted successfully: schedule_id=%d", scheduleID)
	w.WriteHeader(http.StatusNoContent)
}
