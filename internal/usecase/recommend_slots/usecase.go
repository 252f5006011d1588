package recommend_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	staffClient "github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/pkg/types"
)

// UseCase use case подбора слотов для новой записи.
// Чистая синхронная деривация: по записям дня, правилам планирования и
// рабочим часам строит ранжированный список кандидатов (не более 8).
type UseCase struct {
	appointmentRepo AppointmentRepository
	ruleRepo        RuleRepository
	staffClient     StaffServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ruleRepo RuleRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ruleRepo:        ruleRepo,
		staffClient:     staffClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подбора слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecommendSlots: company=%d, barber=%v, date=%s, duration=%d",
		req.CompanyID, req.BarberID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecommendSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем барбершоп (рабочие часы)
	company, err := uc.staffClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("RecommendSlots: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("RecommendSlots: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Дата в прошлом или выходной - пустой результат, не ошибка
	if isDateInPast(req.Date, now) {
		uc.logger.Info("RecommendSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse(req), nil
	}

	workingHours := getWorkingHoursForDay(company, req.Date)
	if !workingHours.IsOpen {
		uc.logger.Info("RecommendSlots: company is closed on %s", req.Date.Format(domain.DateFormat))
		return emptyResponse(req), nil
	}

	openMin, closeMin, err := workingWindow(workingHours)
	if err != nil {
		uc.logger.Error("RecommendSlots: failed to parse working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to parse working hours: %v", ErrInternal, err)
	}

	// 5. Собираем эффективный набор правил (дефолты + override'ы компании)
	overrides, err := uc.ruleRepo.GetByCompany(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("RecommendSlots: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}
	rules := domain.DefaultRuleSet().MergeOverrides(overrides)

	// 6. Определяем барберов, для которых подбираем слоты
	barbers, err := uc.targetBarbers(ctx, req)
	if err != nil {
		return nil, err
	}

	// 7. Получаем активные записи компании на эту дату
	filter := domain.CompanyAppointmentsFilter{
		CompanyID:       req.CompanyID,
		BarberID:        req.BarberID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные записи
	}

	appointments, err := uc.appointmentRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("RecommendSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	byBarber := groupByBarber(appointments)

	// 8. Для подбора на сегодня не предлагаем уже прошедшее время
	nowMin := -1
	if isSameDay(req.Date, now) {
		nowMin = now.Hour()*60 + now.Minute()
	}

	// 9. Для каждого барбера: свободные интервалы -> оценка кандидатов
	slots := make([]domain.CandidateSlot, 0)
	for _, barber := range barbers {
		candidates := findCandidateSlots(byBarber[barber.ID], openMin, closeMin, req.DurationMinutes, rules, nowMin)

		for _, candidate := range candidates {
			slot, err := buildSlot(barber.ID, candidate, req.DurationMinutes, rules)
			if err != nil {
				uc.logger.Error("RecommendSlots: failed to build slot for barber=%d: %v", barber.ID, err)
				return nil, fmt.Errorf("%w: failed to build slot: %v", ErrInternal, err)
			}
			slots = append(slots, slot)
		}
	}

	// 10. Ранжируем и отдаем лучшие
	ranked := rankSlots(slots)

	uc.logger.Info("RecommendSlots: %d candidates, %d recommended for company=%d, date=%s",
		len(slots), len(ranked), req.CompanyID, req.Date.Format(domain.DateFormat))

	return &Response{
		CompanyID:       req.CompanyID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           ranked,
	}, nil
}

// targetBarbers возвращает активных барберов, для которых подбираются слоты.
// При указанном фильтре по барберу - ровно одного (или ErrBarberNotFound).
func (uc *UseCase) targetBarbers(ctx context.Context, req *Request) ([]staffClient.Barber, error) {
	barbers, err := uc.staffClient.GetBarbers(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			uc.logger.Warn("RecommendSlots: company id=%d not found while fetching barbers", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("RecommendSlots: failed to get barbers for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get barbers: %v", ErrInternal, err)
	}

	active := make([]staffClient.Barber, 0, len(barbers))
	for _, barber := range barbers {
		if !barber.IsActive {
			continue
		}
		if req.BarberID != nil && barber.ID != *req.BarberID {
			continue
		}
		active = append(active, barber)
	}

	if req.BarberID != nil && len(active) == 0 {
		uc.logger.Warn("RecommendSlots: barber id=%d not found in company=%d", *req.BarberID, req.CompanyID)
		return nil, ErrBarberNotFound
	}

	return active, nil
}

// buildSlot конвертирует внутреннего кандидата в доменную модель слота
func buildSlot(barberID int64, candidate slotCandidate, durationMinutes int, rules domain.RuleSet) (domain.CandidateSlot, error) {
	startTime, err := types.NewTimeStringFromMinutes(candidate.startMin)
	if err != nil {
		return domain.CandidateSlot{}, err
	}

	endTime, err := types.NewTimeStringFromMinutes(candidate.endMin)
	if err != nil {
		return domain.CandidateSlot{}, err
	}

	score := scoreCandidate(candidate, rules)

	return domain.CandidateSlot{
		BarberID:            barberID,
		StartTime:           startTime,
		EndTime:             endTime,
		DurationMinutes:     durationMinutes,
		Confidence:          score.confidence,
		OptimizationScore:   score.optimizationScore,
		BufferBeforeMinutes: candidate.bufferBeforeMin,
		BufferAfterMinutes:  candidate.bufferAfterMin,
		SuggestedBreak:      score.suggestedBreak,
		Reasoning:           score.reasoning,
	}, nil
}

// groupByBarber группирует записи по барберам, сохраняя сортировку по времени начала
func groupByBarber(appointments []*domain.Appointment) map[int64][]*domain.Appointment {
	byBarber := make(map[int64][]*domain.Appointment)
	for _, appt := range appointments {
		byBarber[appt.BarberID] = append(byBarber[appt.BarberID], appt)
	}
	return byBarber
}

// workingWindow парсит рабочие часы дня в минуты от полуночи.
// При отсутствии времени открытия/закрытия используются дефолтные часы.
func workingWindow(day staffClient.DaySchedule) (int, int, error) {
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
		return 0, 0, err
	}

	closeTime, err := types.NewTimeStringFromString(closeStr)
	if err != nil {
		return 0, 0, err
	}

	openMin, err := openTime.Minutes()
	if err != nil {
		return 0, 0, err
	}

	closeMin, err := closeTime.Minutes()
	if err != nil {
		return 0, 0, err
	}

	return openMin, closeMin, nil
}

// getWorkingHoursForDay возвращает расписание работы барбершопа на указанный день недели
func getWorkingHoursForDay(company *staffClient.Company, date time.Time) staffClient.DaySchedule {
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
		return staffClient.DaySchedule{IsOpen: false}
	}
}

func emptyResponse(req *Request) *Response {
	return &Response{
		CompanyID:       req.CompanyID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           []domain.CandidateSlot{},
	}
}
