package get_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules"
)

const (
	msgInvalidCarWashID = "некорректный ID автомойки"
	msgCarWashNotFound  = "автомойка не найдена"
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

// Handle GET /api/v1/car_washes/{carWashId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carWashID, err := handlers.PathID(r, "carWashId")
	if err != nil {
		h.logger.Warn("GET /car_washes/{id}/schedules - Invalid car wash ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarWashID)
		return
	}

	result, err := h.service.GetByCarWash(r.Context(), carWashID)
	if err != nil {
		if errors.Is(err, schedules.ErrCarWashNotFound) {
			h.logger.Warn("GET /car_washes/{id}/schedules - Car wash not found: car_wash_id=%d", carWashID)
			handlers.RespondNotFound(w, msgCarWashNotFound)
			return
		}
		h.logger.Error("GET /car_washes/{id}/schedules - Failed to get schedules: car_wash_id=%d, error=%v",
			carWashID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /car_washes/{id}/schedules - Schedules retrieved successfully: car_wash_id=%d, count=%d",
		carWashID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result.Schedules)
}
