package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

var (
	// ErrInvalidDayOfWeek день недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("domain: day of week must be in 0..6")

	// ErrStartTimeGreater время открытия не раньше времени закрытия
	ErrStartTimeGreater = errors.New("domain: schedule start time must be before end time")
)

// Schedule часы работы автомойки в определенный день недели.
// Одна запись на (CarWashID, DayOfWeek), общая для всех боксов
type Schedule struct {
	ID          int64
	CarWashID   int64
	DayOfWeek   int // 0 = понедельник, 6 = воскресенье
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Validate проверяет день недели и окно работы
func (s *Schedule) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, s.DayOfWeek)
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrStartTimeGreater, s.StartTime, s.EndTime)
	}
	return nil
}

// WeekdayOf возвращает день недели даты, где понедельник = 0
func WeekdayOf(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
