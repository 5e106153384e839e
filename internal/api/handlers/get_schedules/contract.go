package get_schedules

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/schedules/models"
)

type ScheduleService interface {
	GetByCarWash(ctx context.Context, carWashID int64) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
