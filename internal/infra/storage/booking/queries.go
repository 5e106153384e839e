package booking

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"box_id",
	"user_car_id",
	"user_id",
	"start_datetime",
	"end_datetime",
	"is_exception",
	"state",
	"base_price",
	"total_price",
	"additions",
	"notes",
	"created_at",
	"updated_at",
}

func blockingStates() []string {
	states := make([]string, len(domain.BlockingStates))
	for i, s := range domain.BlockingStates {
		states[i] = string(s)
	}
	return states
}

// dayRowsQuery строит единственный запрос расчета доступности:
// все боксы автомойки с расписанием на день недели даты и их бронированиями,
// пересекающими сутки. Бронирования-исключения не выбираются
func dayRowsQuery(carWashID int64, date time.Time) squirrel.SelectBuilder {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	nextDay := dayStart.AddDate(0, 0, 1)

	bookingJoin := squirrel.And{
		squirrel.Expr("bk.box_id = b.id"),
		squirrel.Eq{"bk.is_exception": false},
		squirrel.Eq{"bk.state": blockingStates()},
		squirrel.Or{
			// начало в пределах суток
			squirrel.And{squirrel.GtOrEq{"bk.start_datetime": dayStart}, squirrel.Lt{"bk.start_datetime": nextDay}},
			// конец в пределах суток
			squirrel.And{squirrel.GtOrEq{"bk.end_datetime": dayStart}, squirrel.Lt{"bk.end_datetime": nextDay}},
			// бронирование накрывает сутки целиком
			squirrel.And{squirrel.Lt{"bk.start_datetime": dayStart}, squirrel.GtOrEq{"bk.end_datetime": nextDay}},
		},
	}
	joinSQL, joinArgs, _ := bookingJoin.ToSql()

	return psqlbuilder.Select(
		"b.id",
		"s.start_time",
		"s.end_time",
		"bk.start_datetime",
		"bk.end_datetime",
	).
		From("boxes b").
		Join("schedules s ON s.car_wash_id = b.car_wash_id AND s.day_of_week = ? AND s.is_available = TRUE",
			domain.WeekdayOf(date)).
		LeftJoin("bookings bk ON "+joinSQL, joinArgs...).
		Where(squirrel.Eq{"b.car_wash_id": carWashID}).
		OrderBy("b.id ASC", "bk.start_datetime ASC")
}

// carWashBookingsQuery выборка бронирований автомойки по фильтру
func carWashBookingsQuery(filter domain.CarWashBookingsFilter) squirrel.SelectBuilder {
	columns := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		columns[i] = "bk." + c
	}

	builder := psqlbuilder.Select(columns...).
		From("bookings bk").
		Join("boxes b ON b.id = bk.box_id").
		Where(squirrel.Eq{"b.car_wash_id": filter.CarWashID})

	// Фильтрация по боксу
	if filter.BoxID != nil {
		builder = builder.Where(squirrel.Eq{"bk.box_id": *filter.BoxID})
	}

	// Фильтрация по периоду, EndDate включительно
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"bk.start_datetime": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.Lt{"bk.start_datetime": filter.EndDate.AddDate(0, 0, 1)})
	}

	if filter.State != nil {
		builder = builder.Where(squirrel.Eq{"bk.state": *filter.State})
	}

	if !filter.IncludeExceptions {
		builder = builder.Where(squirrel.Eq{"bk.is_exception": false})
	}

	return builder.OrderBy("bk.start_datetime ASC")
}
