package get_available_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	getAvailableTimes "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_times"
)

const (
	msgInvalidCarWashID = "некорректный ID автомойки"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCarWashNotFound  = "автомойка не найдена"
	msgInvalidSchedule  = "расписание автомойки содержит ошибку"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/car_washes/{carWashId}/available_times
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {

	carWashID, err := handlers.PathID(r, "carWashId")
	if err != nil {
		h.logger.Warn("GET /car_washes/{id}/available_times - Invalid car wash ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarWashID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /car_washes/{id}/available_times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(carWashID, dateStr)
	if err != nil {
		h.logger.Warn("GET /car_washes/{id}/available_times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrCarWashNotFound):
			h.logger.Warn("GET /car_washes/{id}/available_times - Car wash not found: car_wash_id=%d", carWashID)
			handlers.RespondNotFound(w, msgCarWashNotFound)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /car_washes/{id}/available_times - Invalid input: car_wash_id=%d, error=%v", carWashID, err)
			handlers.RespondBadRequest(w, msgInvalidCarWashID)

		case errors.Is(err, getAvailableTimes.ErrInvalidSchedule):
			h.logger.Error("GET /car_washes/{id}/available_times - Malformed schedule: car_wash_id=%d, error=%v", carWashID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidSchedule)

		default:
			h.logger.Error("GET /car_washes/{id}/available_times - Failed to get times: car_wash_id=%d, error=%v", carWashID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /car_washes/{id}/available_times - Times retrieved successfully: car_wash_id=%d, date=%s, windows=%d",
		carWashID, dateStr, countWindows(result))
	handlers.RespondJSON(w, http.StatusOK, response)
}
