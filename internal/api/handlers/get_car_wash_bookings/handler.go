package get_car_wash_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgInvalidCarWashID = "некорректный ID автомойки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgBoxNotFound      = "бокс не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/car_washes/{carWashId}/bookings
// Query params: boxId, state, date, startDate, endDate, includeExceptions (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carWashID, err := handlers.PathID(r, "carWashId")
	if err != nil {
		h.logger.Warn("GET /car_washes/{id}/bookings - Invalid car wash ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarWashID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /car_washes/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(carWashID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /car_washes/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит права оператора
	result, err := h.service.GetCarWashBookings(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /car_washes/{id}/bookings - Access denied: car_wash_id=%d, user_id=%d",
				carWashID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrBoxNotFound):
			h.logger.Warn("GET /car_washes/{id}/bookings - Box not found: car_wash_id=%d", carWashID)
			handlers.RespondNotFound(w, msgBoxNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /car_washes/{id}/bookings - Invalid filter: car_wash_id=%d, error=%v", carWashID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /car_washes/{id}/bookings - Failed to get bookings: car_wash_id=%d, error=%v",
				carWashID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /car_washes/{id}/bookings - Bookings retrieved successfully: car_wash_id=%d, count=%d",
		carWashID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
