package get_barber_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	companyID int64,
	barberID int64,
	userID int64,
	statusStr string,
	dateStr string,
	includeInactiveStr string,
) (*models.GetBarberAppointmentsRequest, error) {
	req := &models.GetBarberAppointmentsRequest{
		UserID:          userID,
		CompanyID:       companyID,
		BarberID:        barberID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
