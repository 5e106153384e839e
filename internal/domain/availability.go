package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// AvailabilityWindow свободный интервал [Start, End)
type AvailabilityWindow struct {
	Start time.Time
	End   time.Time
}

// Duration длительность окна
func (w AvailabilityWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains true, если [start, end) целиком лежит в окне
func (w AvailabilityWindow) Contains(start, end time.Time) bool {
	return !w.Start.After(start) && !w.End.Before(end)
}

// Availability свободные окна по боксам на одну дату.
// После построения не изменяется: Windows возвращает копию
type Availability struct {
	boxIDs  []int64
	windows map[int64][]AvailabilityWindow
}

// NewAvailability строит результат из окон по боксам
func NewAvailability(windows map[int64][]AvailabilityWindow) Availability {
	ids := make([]int64, 0, len(windows))
	copied := make(map[int64][]AvailabilityWindow, len(windows))
	for id, ws := range windows {
		ids = append(ids, id)
		copied[id] = append([]AvailabilityWindow(nil), ws...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return Availability{boxIDs: ids, windows: copied}
}

// IsEmpty true, если ни у одного бокса нет расписания на дату
func (a Availability) IsEmpty() bool {
	return len(a.boxIDs) == 0
}

// BoxIDs боксы в порядке возрастания id
func (a Availability) BoxIDs() []int64 {
	return append([]int64(nil), a.boxIDs...)
}

// Windows окна бокса. ok = false, если бокса нет в результате
func (a Availability) Windows(boxID int64) ([]AvailabilityWindow, bool) {
	ws, ok := a.windows[boxID]
	if !ok {
		return nil, false
	}
	return append([]AvailabilityWindow(nil), ws...), true
}

// Fits проверяет, что [start, end) целиком помещается в одно из окон бокса
func (a Availability) Fits(boxID int64, start, end time.Time) bool {
	for _, w := range a.windows[boxID] {
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}

// DayRow строка выборки для расчета: расписание бокса и одно бронирование (если есть)
type DayRow struct {
	BoxID         int64
	ScheduleStart types.TimeString
	ScheduleEnd   types.TimeString
	BookingStart  *time.Time
	BookingEnd    *time.Time
}
