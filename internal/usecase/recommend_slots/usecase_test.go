package recommend_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/ptr"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	lastFilter   domain.CompanyAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, f.err
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

func closedEveryDay() staffservice.WeekSchedule {
	return staffservice.WeekSchedule{}
}

func testCompany(schedule staffservice.WeekSchedule) *staffservice.Company {
	return &staffservice.Company{
		ID:           1,
		Name:         "Barbershop #1",
		ManagerIDs:   []int64{100},
		WorkingHours: schedule,
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, ruleRepo *fakeRuleRepo, staff *fakeStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, ruleRepo, staff, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func scheduledAppointment(barberID int64, start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		BarberID:        barberID,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusScheduled,
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 0,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{companyErr: staffservice.ErrCompanyNotFound},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       999,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{company: testCompany(openEveryDay("09:00", "18:00"))},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{company: testCompany(closedEveryDay())},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BarberFilterNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{
			company: testCompany(openEveryDay("09:00", "18:00")),
			barbers: []staffservice.Barber{
				{ID: 10, CompanyID: 1, DisplayName: "Иван", IsActive: true},
			},
		},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		BarberID:        ptr.Ptr(int64(99)),
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InactiveBarberFilteredOut(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{
			company: testCompany(openEveryDay("09:00", "18:00")),
			barbers: []staffservice.Barber{
				{ID: 10, CompanyID: 1, DisplayName: "Иван", IsActive: false},
			},
		},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	// Уволенный барбер с явным фильтром неотличим от несуществующего
	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		BarberID:        ptr.Ptr(int64(10)),
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrBarberNotFound)

	// Без фильтра: уволенные барберы просто не получают слотов
	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_RecommendsRankedSlots(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			scheduledAppointment(10, "10:00", 30),
		},
	}
	uc := newTestUseCase(
		repo,
		&fakeRuleRepo{},
		&fakeStaffClient{
			company: testCompany(openEveryDay("09:00", "18:00")),
			barbers: []staffservice.Barber{
				{ID: 10, CompanyID: 1, DisplayName: "Иван", IsActive: true},
			},
		},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// Пиковый слот после записи выигрывает у утреннего
	best := resp.Slots[0]
	assert.Equal(t, int64(10), best.BarberID)
	assert.Equal(t, types.TimeString("10:45"), best.StartTime)
	assert.Equal(t, types.TimeString("11:15"), best.EndTime)
	assert.Equal(t, 100, best.Confidence)
	assert.Equal(t, 95, best.OptimizationScore)
	assert.NotEmpty(t, best.Reasoning)

	second := resp.Slots[1]
	assert.Equal(t, types.TimeString("09:00"), second.StartTime)
	assert.Greater(t, best.CombinedScore(), second.CombinedScore())

	// Репозиторий запрошен только по активным записям на эту дату
	assert.False(t, repo.lastFilter.IncludeInactive)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, *repo.lastFilter.StartDate, *repo.lastFilter.EndDate)
}

func TestExecute_RuleOverridesApplied(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{
			appointments: []*domain.Appointment{
				scheduledAppointment(10, "10:00", 30),
			},
		},
		&fakeRuleRepo{
			overrides: []domain.SchedulingRule{
				{ID: domain.RuleServiceBuffer, Enabled: false},
				{ID: domain.RuleClientPrep, Enabled: false},
			},
		},
		&fakeStaffClient{
			company: testCompany(openEveryDay("09:00", "18:00")),
			barbers: []staffservice.Barber{
				{ID: 10, CompanyID: 1, DisplayName: "Иван", IsActive: true},
			},
		},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// Без буферов слот предлагается вплотную к записи
	var afterAppointment *domain.CandidateSlot
	for i := range resp.Slots {
		if resp.Slots[i].StartTime == "10:30" {
			afterAppointment = &resp.Slots[i]
		}
	}
	require.NotNil(t, afterAppointment)
	assert.Equal(t, 0, afterAppointment.BufferBeforeMinutes)
}

func TestExecute_SameDayClipsPastSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeRuleRepo{},
		&fakeStaffClient{
			company: testCompany(openEveryDay("09:00", "18:00")),
			barbers: []staffservice.Barber{
				{ID: 10, CompanyID: 1, DisplayName: "Иван", IsActive: true},
			},
		},
		time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, startMin, 15*60)
	}
}
