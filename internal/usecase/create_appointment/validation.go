package create_appointment

import (
	"fmt"
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.ServiceName == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}

	if req.ServicePrice < 0 {
		return fmt.Errorf("%w: servicePrice must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateBarberExists проверяет, что барбер существует в барбершопе и активен
func validateBarberExists(barbers []staffservice.Barber, barberID int64) error {
	for _, barber := range barbers {
		if barber.ID == barberID && barber.IsActive {
			return nil
		}
	}
	return ErrBarberNotFound
}

// validateWithinWorkingHours проверяет, что запись целиком помещается в рабочие часы
func validateWithinWorkingHours(
	startTime types.TimeString,
	durationMinutes int,
	day staffservice.DaySchedule,
) error {
	openStr := domain.DefaultWorkdayOpenTime
	if day.OpenTime != nil {
		openStr = *day.OpenTime
	}

	closeStr := domain.DefaultWorkdayCloseTime
	if day.CloseTime != nil {
		closeStr = *day.CloseTime
	}

	openTime, err := types.NewTimeStringFromString(openStr)
	if err != nil {
		return fmt.Errorf("%w: failed to parse open time: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(closeStr)
	if err != nil {
		return fmt.Errorf("%w: failed to parse close time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(openTime) {
		return ErrOutsideWorkingHours
	}

	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideWorkingHours
	}

	if endTime.IsAfter(closeTime) {
		return ErrOutsideWorkingHours
	}

	return nil
}

// validateNotInPastTime проверяет, что время записи на сегодня еще не прошло
func validateNotInPastTime(appointmentDate time.Time, startTime types.TimeString, now time.Time) error {
	// Если дата записи не сегодня, проверка не нужна
	if !isSameDay(appointmentDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrTooLateToBook
	}

	return nil
}

// hasConflict проверяет пересечение новой записи с существующими записями барбера.
// Между записями резервируется сервисный буфер с обеих сторон.
func hasConflict(
	startTime types.TimeString,
	durationMinutes int,
	serviceBufferMinutes int,
	appointments []*domain.Appointment,
) (bool, error) {
	startMin, err := startTime.Minutes()
	if err != nil {
		return false, err
	}
	endMin := startMin + durationMinutes

	for _, appt := range appointments {
		// Пропускаем неактивные записи
		if !appt.IsActive() {
			continue
		}

		apptStartMin, err := appt.StartTime.Minutes()
		if err != nil {
			// Если не можем вычислить время записи, пропускаем
			continue
		}
		apptEndMin := apptStartMin + appt.DurationMinutes

		// Пересечение с учетом сервисного буфера между записями
		if apptStartMin < endMin+serviceBufferMinutes && apptEndMin+serviceBufferMinutes > startMin {
			return true, nil
		}
	}

	return false, nil
}

// getWorkingHoursForDay возвращает расписание работы барбершопа на указанный день недели
func getWorkingHoursForDay(company *staffservice.Company, date time.Time) staffservice.DaySchedule {
	weekday := date.Weekday()

	switch weekday {
	case time.Monday:
		return company.WorkingHours.Monday
	case time.Tuesday:
		return company.WorkingHours.Tuesday
	case time.Wednesday:
		return company.WorkingHours.Wednesday
	case time.Thursday:
		return company.WorkingHours.Thursday
	case time.Friday:
		return company.WorkingHours.Friday
	case time.Saturday:
		return company.WorkingHours.Saturday
	case time.Sunday:
		return company.WorkingHours.Sunday
	default:
		return staffservice.DaySchedule{IsOpen: false}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
