package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/ptr"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

func validRequest() *Request {
	return &Request{
		ClientID:        1,
		CompanyID:       2,
		BarberID:        3,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		ServiceName:     "Стрижка",
		ServicePrice:    1500,
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Request) {}, wantErr: false},
		{name: "zero client", mutate: func(r *Request) { r.ClientID = 0 }, wantErr: true},
		{name: "negative company", mutate: func(r *Request) { r.CompanyID = -1 }, wantErr: true},
		{name: "zero barber", mutate: func(r *Request) { r.BarberID = 0 }, wantErr: true},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }, wantErr: true},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }, wantErr: true},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }, wantErr: true},
		{name: "duration too short", mutate: func(r *Request) { r.DurationMinutes = 4 }, wantErr: true},
		{name: "duration too long", mutate: func(r *Request) { r.DurationMinutes = 481 }, wantErr: true},
		{name: "empty service name", mutate: func(r *Request) { r.ServiceName = "" }, wantErr: true},
		{name: "negative price", mutate: func(r *Request) { r.ServicePrice = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBarberExists(t *testing.T) {
	barbers := []staffservice.Barber{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: false},
	}

	assert.NoError(t, validateBarberExists(barbers, 1))
	assert.ErrorIs(t, validateBarberExists(barbers, 2), ErrBarberNotFound) // уволенный барбер
	assert.ErrorIs(t, validateBarberExists(barbers, 3), ErrBarberNotFound)
	assert.ErrorIs(t, validateBarberExists(nil, 1), ErrBarberNotFound)
}

func TestValidateWithinWorkingHours(t *testing.T) {
	day := staffservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("18:00"),
	}

	tests := []struct {
		name      string
		startTime string
		duration  int
		wantErr   error
	}{
		{name: "inside working hours", startTime: "10:00", duration: 30},
		{name: "starts at open", startTime: "09:00", duration: 30},
		{name: "ends exactly at close", startTime: "17:30", duration: 30},
		{name: "before open", startTime: "08:30", duration: 30, wantErr: ErrOutsideWorkingHours},
		{name: "runs past close", startTime: "17:45", duration: 30, wantErr: ErrOutsideWorkingHours},
		{name: "runs past midnight", startTime: "23:00", duration: 120, wantErr: ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWithinWorkingHours(types.TimeString(tt.startTime), tt.duration, day)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateWithinWorkingHours_DefaultsWhenScheduleIncomplete(t *testing.T) {
	// Нет явных часов: используется дефолтное окно 09:00-18:00
	day := staffservice.DaySchedule{IsOpen: true}

	assert.NoError(t, validateWithinWorkingHours(types.TimeString("09:00"), 60, day))
	assert.ErrorIs(t, validateWithinWorkingHours(types.TimeString("08:00"), 60, day), ErrOutsideWorkingHours)
	assert.ErrorIs(t, validateWithinWorkingHours(types.TimeString("17:30"), 60, day), ErrOutsideWorkingHours)
}

func TestValidateNotInPastTime(t *testing.T) {
	now := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)

	// Запись на другой день: время не проверяется
	tomorrow := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, validateNotInPastTime(tomorrow, types.TimeString("09:00"), now))

	// Запись на сегодня позже текущего времени
	today := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, validateNotInPastTime(today, types.TimeString("15:00"), now))

	// Запись на сегодня в прошлом
	assert.ErrorIs(t, validateNotInPastTime(today, types.TimeString("13:00"), now), ErrTooLateToBook)
}

func TestHasConflict(t *testing.T) {
	appointments := []*domain.Appointment{
		{
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	tests := []struct {
		name         string
		startTime    string
		duration     int
		buffer       int
		wantConflict bool
	}{
		{name: "direct overlap", startTime: "10:15", duration: 30, wantConflict: true},
		{name: "contains existing", startTime: "09:45", duration: 60, wantConflict: true},
		{name: "back-to-back without buffer", startTime: "10:30", duration: 30, wantConflict: false},
		{name: "back-to-back violates buffer", startTime: "10:30", duration: 30, buffer: 10, wantConflict: true},
		{name: "respects buffer", startTime: "10:40", duration: 30, buffer: 10, wantConflict: false},
		{name: "ends right before with buffer", startTime: "09:20", duration: 30, buffer: 10, wantConflict: false},
		{name: "far away", startTime: "14:00", duration: 30, buffer: 10, wantConflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, err := hasConflict(types.TimeString(tt.startTime), tt.duration, tt.buffer, appointments)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConflict, conflict)
		})
	}
}

func TestHasConflict_IgnoresInactiveAppointments(t *testing.T) {
	cancelled := &domain.Appointment{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		Status:          domain.StatusCancelledByClient,
	}

	conflict, err := hasConflict(types.TimeString("10:00"), 30, 10, []*domain.Appointment{cancelled})
	require.NoError(t, err)
	assert.False(t, conflict)
}
