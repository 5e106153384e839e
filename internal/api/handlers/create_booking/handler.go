package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат даты и времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotAvailable       = "выбранное время недоступно"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBoxNotFound        = "бокс не найден"
	msgCarNotFound        = "автомобиль не найден"
	msgConfigNotFound     = "комплектация автомобиля не найдена"
	msgAdditionNotFound   = "дополнительная услуга не найдена"
	msgForbidden          = "автомобиль принадлежит другому пользователю"
	msgPriceNotFound      = "для этого автомобиля не задана цена"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingNotAvailable):
			h.logger.Warn("POST /bookings - Time not available: user_id=%d, box_id=%d", actor.UserID, req.BoxID)
			handlers.RespondBadRequest(w, msgNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrBoxNotFound):
			h.logger.Warn("POST /bookings - Box not found: box_id=%d", req.BoxID)
			handlers.RespondNotFound(w, msgBoxNotFound)

		case errors.Is(err, createBooking.ErrUserCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: user_id=%d, user_car_id=%d", actor.UserID, req.UserCarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrConfigurationNotFound):
			h.logger.Warn("POST /bookings - Configuration not found: user_car_id=%d", req.UserCarID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, createBooking.ErrAdditionNotFound):
			h.logger.Warn("POST /bookings - Addition not found: box_id=%d, additions=%v", req.BoxID, req.Additions)
			handlers.RespondNotFound(w, msgAdditionNotFound)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Foreign car: user_id=%d, user_car_id=%d", actor.UserID, req.UserCarID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrPriceNotFound):
			h.logger.Error("POST /bookings - Price not configured: box_id=%d, user_car_id=%d", req.BoxID, req.UserCarID)
			handlers.RespondConflict(w, msgPriceNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, box_id=%d, error=%v",
				actor.UserID, req.BoxID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, box_id=%d",
		result.ID, actor.UserID, result.BoxID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
