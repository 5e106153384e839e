package get_car_wash_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день, startDate/endDate задают период
func ToServiceRequest(carWashID int64, query url.Values) (*models.GetCarWashBookingsRequest, error) {
	req := &models.GetCarWashBookingsRequest{
		CarWashID: carWashID,
	}

	if boxIDStr := query.Get("boxId"); boxIDStr != "" {
		boxID, err := strconv.ParseInt(boxIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid boxId value: %w", err)
		}
		req.BoxID = &boxID
	}

	if state := query.Get("state"); state != "" {
		req.State = &state
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	if includeStr := query.Get("includeExceptions"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeExceptions value: %w", err)
		}
		req.IncludeExceptions = include
	}

	return req, nil
}
