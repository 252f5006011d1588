package domain

import (
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled          AppointmentStatus = "scheduled"
	StatusConfirmed          AppointmentStatus = "confirmed"
	StatusInProgress         AppointmentStatus = "in_progress"
	StatusCompleted          AppointmentStatus = "completed"
	StatusCancelledByClient  AppointmentStatus = "cancelled_by_client"
	StatusCancelledByCompany AppointmentStatus = "cancelled_by_company"
	StatusNoShow             AppointmentStatus = "no_show"
)

// Appointment represents a barber appointment in the system
type Appointment struct {
	ID              int64
	ClientID        int64
	CompanyID       int64
	BarberID        int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment is in an active state
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledByCompany &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// EndTime returns the end of the appointment (start + duration)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// CompanyAppointmentsFilter фильтр для получения записей компании
type CompanyAppointmentsFilter struct {
	CompanyID       int64              // Обязательный параметр
	BarberID        *int64             // Фильтр по барберу (опционально, если nil - все барберы)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные записи (отмененные, no-show)
}
