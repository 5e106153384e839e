package get_available_times

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model.
// AvailableTimes: id бокса -> список пар [начало, конец)
type AvailableTimesResponse struct {
	CarWashID      int64                  `json:"carWashId"`
	Date           string                 `json:"date"`
	AvailableTimes map[string][][2]string `json:"availableTimes"`
}

// ToUseCaseRequest парсит дату и формирует запрос к use case
func ToUseCaseRequest(carWashID int64, dateStr string) (*getAvailableTimes.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		CarWashID: carWashID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	result := &AvailableTimesResponse{
		CarWashID:      resp.CarWashID,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableTimes: make(map[string][][2]string),
	}

	for _, boxID := range resp.Availability.BoxIDs() {
		windows, _ := resp.Availability.Windows(boxID)
		pairs := make([][2]string, 0, len(windows))
		for _, w := range windows {
			pairs = append(pairs, [2]string{
				w.Start.Format(domain.DateTimeFormat),
				w.End.Format(domain.DateTimeFormat),
			})
		}
		result.AvailableTimes[strconv.FormatInt(boxID, 10)] = pairs
	}

	return result
}

func countWindows(resp *getAvailableTimes.Response) int {
	total := 0
	for _, boxID := range resp.Availability.BoxIDs() {
		windows, _ := resp.Availability.Windows(boxID)
		total += len(windows)
	}
	return total
}
