package get_available_times

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// boxDay расписание одного бокса на дату и его блокирующие бронирования
type boxDay struct {
	scheduleStart time.Time
	scheduleEnd   time.Time
	bookings      []domain.AvailabilityWindow
}

// Calculate строит свободные окна по боксам из строк выборки на дату.
// Пустой набор строк дает пустой результат
func Calculate(date time.Time, rows []domain.DayRow) (domain.Availability, error) {
	days, err := groupByBox(date, rows)
	if err != nil {
		return domain.Availability{}, err
	}

	windows := make(map[int64][]domain.AvailabilityWindow, len(days))
	for boxID, day := range days {
		windows[boxID] = freeWindows(day)
	}

	return domain.NewAvailability(windows), nil
}

// groupByBox разбирает строки LEFT JOIN: одна строка на бронирование,
// либо одна строка с пустым бронированием для свободного бокса
func groupByBox(date time.Time, rows []domain.DayRow) (map[int64]*boxDay, error) {
	days := make(map[int64]*boxDay)

	for _, row := range rows {
		day, ok := days[row.BoxID]
		if !ok {
			start, err := row.ScheduleStart.On(date)
			if err != nil {
				return nil, fmt.Errorf("%w: box %d: %v", ErrInvalidSchedule, row.BoxID, err)
			}
			end, err := row.ScheduleEnd.On(date)
			if err != nil {
				return nil, fmt.Errorf("%w: box %d: %v", ErrInvalidSchedule, row.BoxID, err)
			}
			if !end.After(start) {
				return nil, fmt.Errorf("%w: box %d: %s >= %s",
					ErrInvalidSchedule, row.BoxID, row.ScheduleStart, row.ScheduleEnd)
			}

			day = &boxDay{scheduleStart: start, scheduleEnd: end}
			days[row.BoxID] = day
		}

		if row.BookingStart == nil || row.BookingEnd == nil {
			continue
		}

		day.bookings = append(day.bookings, domain.AvailabilityWindow{
			Start: *row.BookingStart,
			End:   *row.BookingEnd,
		})
	}

	return days, nil
}

// freeWindows проходит бронирования бокса курсором от начала расписания.
// Бокс без бронирований получает весь день целиком, без фильтра по длительности
func freeWindows(day *boxDay) []domain.AvailabilityWindow {
	if len(day.bookings) == 0 {
		return []domain.AvailabilityWindow{{Start: day.scheduleStart, End: day.scheduleEnd}}
	}

	// порядок по началу приходит из запроса, но алгоритм от него зависит
	sort.SliceStable(day.bookings, func(i, j int) bool {
		return day.bookings[i].Start.Before(day.bookings[j].Start)
	})

	result := make([]domain.AvailabilityWindow, 0, len(day.bookings)+1)
	cursor := day.scheduleStart
	ceiling := day.scheduleEnd

	for _, booking := range day.bookings {
		if booking.Start.After(cursor) {
			result = mergeOrAppend(result, domain.AvailabilityWindow{
				Start: cursor,
				End:   minTime(booking.Start, ceiling),
			})
		}
		cursor = maxTime(cursor, booking.End)
	}

	if cursor.Before(ceiling) {
		result = mergeOrAppend(result, domain.AvailabilityWindow{Start: cursor, End: ceiling})
	}

	return result
}

// mergeOrAppend продлевает последнее окно, если кандидат с ним смыкается,
// иначе добавляет кандидат не короче MinWindowDuration
func mergeOrAppend(windows []domain.AvailabilityWindow, candidate domain.AvailabilityWindow) []domain.AvailabilityWindow {
	if !candidate.End.After(candidate.Start) {
		return windows
	}

	if n := len(windows); n > 0 && !candidate.Start.After(windows[n-1].End) {
		windows[n-1].End = maxTime(windows[n-1].End, candidate.End)
		return windows
	}

	if candidate.Duration() >= domain.MinWindowDuration {
		windows = append(windows, candidate)
	}

	return windows
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
