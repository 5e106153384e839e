package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модель запроса свободного времени
type Request struct {
	CarWashID int64     // ID автомойки
	Date      time.Time // Дата (время суток игнорируется)
}

// Response модель ответа: свободные окна по боксам
type Response struct {
	CarWashID    int64
	Date         time.Time
	Availability domain.Availability
}
