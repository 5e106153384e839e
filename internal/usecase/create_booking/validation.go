package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest проверяет запрос до обращения к хранилищу.
// fixedDuration = 0 отключает проверку длительности
func validateRequest(req *Request, fixedDuration time.Duration) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BoxID <= 0 {
		return fmt.Errorf("%w: boxID must be positive", ErrInvalidInput)
	}

	if req.UserCarID <= 0 {
		return fmt.Errorf("%w: userCarID must be positive", ErrInvalidInput)
	}

	if req.StartDatetime.IsZero() || req.EndDatetime.IsZero() {
		return fmt.Errorf("%w: start and end datetime are required", ErrInvalidInput)
	}

	if !req.EndDatetime.After(req.StartDatetime) {
		return fmt.Errorf("%w: end datetime must be after start datetime", ErrInvalidInput)
	}

	if fixedDuration > 0 && req.EndDatetime.Sub(req.StartDatetime) != fixedDuration {
		return fmt.Errorf("%w: booking must last exactly %s", ErrInvalidInput, fixedDuration)
	}

	if len(req.AdditionIDs) > domain.MaxAdditionsPerBooking {
		return fmt.Errorf("%w: at most %d additions allowed", ErrInvalidInput, domain.MaxAdditionsPerBooking)
	}

	for _, id := range req.AdditionIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addition id must be positive", ErrInvalidInput)
		}
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
