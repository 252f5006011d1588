package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	staffClient "github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	ruleRepo        RuleRepository
	staffClient     StaffServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ruleRepo RuleRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ruleRepo:        ruleRepo,
		staffClient:     staffClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, company=%d, barber=%d, date=%s, time=%s",
		req.ClientID, req.CompanyID, req.BarberID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату и время
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if err := validateNotInPastTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем барбершоп
	company, err := uc.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateAppointment: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 5. Проверяем рабочие часы на указанную дату
	workingHours := getWorkingHoursForDay(company, req.Date)
	if !workingHours.IsOpen {
		uc.logger.Warn("CreateAppointment: company is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrCompanyClosed
	}

	if err := validateWithinWorkingHours(req.StartTime, req.DurationMinutes, workingHours); err != nil {
		uc.logger.Warn("CreateAppointment: working hours validation failed: %v", err)
		return nil, err
	}

	// 6. Проверяем существование барбера
	barbers, err := uc.staffClient.GetBarbers(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get barbers for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get barbers: %v", ErrInternal, err)
	}

	if err := validateBarberExists(barbers, req.BarberID); err != nil {
		uc.logger.Warn("CreateAppointment: barber id=%d not found in company id=%d", req.BarberID, req.CompanyID)
		return nil, err
	}

	// 7. Собираем эффективный набор правил (дефолты + override'ы компании)
	overrides, err := uc.ruleRepo.GetByCompany(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}
	rules := domain.DefaultRuleSet().MergeOverrides(overrides)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем все активные записи барбера на эту дату с блокировкой (FOR UPDATE)
		filter := domain.CompanyAppointmentsFilter{
			CompanyID:       req.CompanyID,
			BarberID:        ptr.Ptr(req.BarberID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные записи
		}

		appointments, err := uc.appointmentRepo.GetByCompanyWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем конфликты с существующими записями
		conflict, err := hasConflict(req.StartTime, req.DurationMinutes, rules.ServiceBufferMinutes(), appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		if conflict {
			uc.logger.Warn("CreateAppointment: slot %s conflicts with an existing appointment", req.StartTime)
			return ErrSlotNotAvailable
		}

		// 8.3. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			CompanyID:       req.CompanyID,
			BarberID:        req.BarberID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     req.ServiceName,
			ServicePrice:    req.ServicePrice,
			Notes:           req.Notes,
		}

		// 8.4. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		CompanyID:       result.CompanyID,
		BarberID:        result.BarberID,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
