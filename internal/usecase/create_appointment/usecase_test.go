package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	getErr       error
	createErr    error
}

func (f *fakeAppointmentRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.getErr
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appointment
	created.ID = 42
	created.CreatedAt = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakeRuleRepo struct {
	overrides []domain.SchedulingRule
	err       error
}

func (f *fakeRuleRepo) GetByCompany(_ context.Context, _ int64) ([]domain.SchedulingRule, error) {
	return f.overrides, f.err
}

type fakeStaffClient struct {
	company    *staffservice.Company
	barbers    []staffservice.Barber
	companyErr error
	barbersErr error
}

func (f *fakeStaffClient) GetCompany(_ context.Context, _ int64) (*staffservice.Company, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return f.company, nil
}

func (f *fakeStaffClient) GetBarbers(_ context.Context, _ int64) ([]staffservice.Barber, error) {
	if f.barbersErr != nil {
		return nil, f.barbersErr
	}
	return f.barbers, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	serializableCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializableCalls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openEveryDay(open, close string) staffservice.WeekSchedule {
	day := staffservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  &open,
		CloseTime: &close,
	}
	return staffservice.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

type testEnv struct {
	uc    *UseCase
	repo  *fakeAppointmentRepo
	txMgr *fakeTxManager
	staff *fakeStaffClient
}

func newTestEnv(now time.Time) *testEnv {
	repo := &fakeAppointmentRepo{}
	txMgr := &fakeTxManager{}
	staff := &fakeStaffClient{
		company: &staffservice.Company{
			ID:           2,
			Name:         "Barbershop #1",
			ManagerIDs:   []int64{100},
			WorkingHours: openEveryDay("09:00", "18:00"),
		},
		barbers: []staffservice.Barber{
			{ID: 3, CompanyID: 2, DisplayName: "Иван", IsActive: true},
		},
	}

	uc := NewUseCase(repo, &fakeRuleRepo{}, staff, txMgr, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{uc: uc, repo: repo, txMgr: txMgr, staff: staff}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)

	// Конфликты проверяются и запись создается в сериализуемой транзакции
	assert.Equal(t, 1, env.txMgr.serializableCalls)
	require.NotNil(t, env.repo.created)
	assert.Equal(t, domain.StatusScheduled, env.repo.created.Status)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	env.repo.appointments = []*domain.Appointment{
		{
			BarberID:        3,
			StartTime:       types.TimeString("10:15"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, env.repo.created)
}

func TestExecute_ServiceBufferBlocksAdjacentSlot(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	// Существующая запись заканчивается ровно в 10:00, но сервисный буфер
	// (10 минут по умолчанию) не позволяет записаться вплотную
	env.repo.appointments = []*domain.Appointment{
		{
			BarberID:        3,
			StartTime:       types.TimeString("09:30"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PastDate(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC))

	// Запись на сегодня в 10:00, а сейчас уже 14:00
	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	env.staff.companyErr = staffservice.ErrCompanyNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_CompanyClosed(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	env.staff.company.WorkingHours = staffservice.WeekSchedule{}

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	req := validRequest()
	req.StartTime = types.TimeString("17:45")

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_BarberNotFound(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	req := validRequest()
	req.BarberID = 99

	_, err := env.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_DisabledBufferAllowsBackToBack(t *testing.T) {
	env := newTestEnv(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	env.uc.ruleRepo = &fakeRuleRepo{
		overrides: []domain.SchedulingRule{
			{ID: domain.RuleServiceBuffer, Enabled: false},
		},
	}
	env.repo.appointments = []*domain.Appointment{
		{
			BarberID:        3,
			StartTime:       types.TimeString("09:30"),
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}
