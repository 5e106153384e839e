package upsert_schedule

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules/models"
)

type ScheduleService interface {
	Upsert(ctx context.Context, actor domain.Actor, carWashID int64, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
