package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	appointmentRepo "github.com/kosmatoff/BMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/appointments/models"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/ptr"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment

	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.AppointmentStatus

	lastFilter domain.CompanyAppointmentsFilter

	getErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	return appointment, nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type fakeStaffClient struct {
	company *staffservice.Company
	barbers []staffservice.Barber
	err     error
}

func (f *fakeStaffClient) GetCompany(_ context.Context, _ int64) (*staffservice.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

func (f *fakeStaffClient) GetBarbers(_ context.Context, _ int64) ([]staffservice.Barber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.barbers, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	clientID   = int64(500)
	managerID  = int64(100)
	strangerID = int64(777)
)

func storedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		ClientID:        clientID,
		CompanyID:       2,
		BarberID:        3,
		AppointmentDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
		ServiceName:     "Стрижка",
		ServicePrice:    1500,
	}
}

func newTestService(repo *fakeAppointmentRepo, staff *fakeStaffClient) *Service {
	return NewService(repo, staff, nopLogger{})
}

func defaultStaffClient() *fakeStaffClient {
	return &fakeStaffClient{
		company: &staffservice.Company{
			ID:         2,
			Name:       "Barbershop #1",
			ManagerIDs: []int64{managerID},
		},
		barbers: []staffservice.Barber{
			{ID: 3, CompanyID: 2, DisplayName: "Иван", IsActive: true},
		},
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	resp, err := svc.GetByID(context.Background(), 1, clientID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2026-03-03", resp.AppointmentDate)
}

func TestGetByID_Manager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	_, err := svc.GetByID(context.Background(), 1, managerID)
	assert.NoError(t, err)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}
	svc := newTestService(repo, defaultStaffClient())

	_, err := svc.GetByID(context.Background(), 999, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetClientAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultStaffClient())

	_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: clientID,
		Status:   ptr.Ptr("bogus"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClientAppointments(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{storedAppointment()},
	}
	svc := newTestService(repo, defaultStaffClient())

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: clientID,
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Стрижка", resp.Appointments[0].ServiceName)
}

func TestGetBarberAppointments_ManagerOnly(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultStaffClient())

	_, err := svc.GetBarberAppointments(context.Background(), &models.GetBarberAppointmentsRequest{
		UserID:    strangerID,
		CompanyID: 2,
		BarberID:  3,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBarberAppointments_BarberNotFound(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultStaffClient())

	_, err := svc.GetBarberAppointments(context.Background(), &models.GetBarberAppointmentsRequest{
		UserID:    managerID,
		CompanyID: 2,
		BarberID:  99,
	})

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestGetBarberAppointments_FilterPassedThrough(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := newTestService(repo, defaultStaffClient())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetBarberAppointments(context.Background(), &models.GetBarberAppointmentsRequest{
		UserID:          managerID,
		CompanyID:       2,
		BarberID:        3,
		StartDate:       &start,
		EndDate:         &end,
		Status:          ptr.Ptr(string(domain.StatusConfirmed)),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.lastFilter.CompanyID)
	require.NotNil(t, repo.lastFilter.BarberID)
	assert.Equal(t, int64(3), *repo.lastFilter.BarberID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             clientID,
		CancellationReason: "передумал",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
	assert.Equal(t, "передумал", repo.cancelledReason)
}

func TestCancel_ByManager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: managerID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByCompany, repo.cancelledStatus)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: strangerID,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_CompletedAppointment(t *testing.T) {
	appointment := storedAppointment()
	appointment.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{appointment: appointment}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_Manager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: string(domain.StatusConfirmed),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.updatedID)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus)
}

func TestUpdateStatus_NotManager(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: clientID, // владелец записи, но не менеджер
		Status: string(domain.StatusConfirmed),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: storedAppointment()}
	svc := newTestService(repo, defaultStaffClient())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "bogus",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.updatedID)
}
