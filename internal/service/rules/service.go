package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	staffClient "github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

// Service сервис для работы с правилами планирования
type Service struct {
	ruleRepo    RuleRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		staffClient: staffClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetEffectiveRules возвращает эффективный набор правил компании:
// дефолтные правила с примененными override'ами.
// Публичный метод - набор правил виден всем пользователям компании.
func (s *Service) GetEffectiveRules(ctx context.Context, companyID int64) (*models.RuleListResponse, error) {
	s.logger.Info("GetEffectiveRules: fetching rules for company=%d", companyID)

	overrides, err := s.ruleRepo.GetByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetEffectiveRules: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetEffectiveRules - repository error: %v", ErrInternal, err)
	}

	rules := domain.DefaultRuleSet().MergeOverrides(overrides)

	s.logger.Info("GetEffectiveRules: company=%d has %d overrides", companyID, len(overrides))
	return models.FromDomainRuleSet(companyID, rules), nil
}

// UpdateRules обновляет правила планирования компании
// Доступно только менеджерам барбершопа
// Поддерживает частичное обновление - обновляются только переданные правила
func (s *Service) UpdateRules(ctx context.Context, companyID int64, req *models.UpdateRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("UpdateRules: updating %d rules for company=%d by user=%d", len(req.Rules), companyID, req.UserID)

	// 1. Проверяем права доступа (только менеджер барбершопа)
	if err := s.checkManagerAccess(ctx, companyID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Собираем текущий эффективный набор правил
	overrides, err := s.ruleRepo.GetByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("UpdateRules: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: UpdateRules - repository error: %v", ErrInternal, err)
	}

	rules := domain.DefaultRuleSet().MergeOverrides(overrides)

	// 3. Применяем изменения
	if err := req.ApplyToRuleSet(rules); err != nil {
		s.logger.Warn("UpdateRules: invalid rule in request for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Валидируем каждое измененное правило
	for _, update := range req.Rules {
		rule := rules.FindByID(domain.RuleID(update.ID))
		if err := rule.Validate(); err != nil {
			s.logger.Warn("UpdateRules: validation failed for company=%d: %v", companyID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// 5. Сохраняем override'ы в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, update := range req.Rules {
			rule := rules.FindByID(domain.RuleID(update.ID))
			if err := s.ruleRepo.Upsert(txCtx, companyID, *rule); err != nil {
				return fmt.Errorf("%w: UpdateRules - upsert rule %s: %v", ErrInternal, update.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateRules: failed to save rules for company=%d: %v", companyID, err)
		return nil, err
	}

	s.logger.Info("UpdateRules: successfully updated rules for company=%d", companyID)
	return models.FromDomainRuleSet(companyID, rules), nil
}

// ResetRules сбрасывает правила компании к дефолтным значениям
// Доступно только менеджерам барбершопа
func (s *Service) ResetRules(ctx context.Context, companyID int64, req *models.ResetRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("ResetRules: resetting rules for company=%d by user=%d", companyID, req.UserID)

	// Проверяем права доступа (только менеджер барбершопа)
	if err := s.checkManagerAccess(ctx, companyID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.DeleteByCompany(ctx, companyID); err != nil {
		s.logger.Error("ResetRules: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: ResetRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ResetRules: successfully reset rules for company=%d", companyID)
	return models.FromDomainRuleSet(companyID, domain.DefaultRuleSet()), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером барбершопа
func (s *Service) checkManagerAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := s.staffClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, staffClient.ErrCompanyNotFound) {
			s.logger.Warn("checkManagerAccess: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get company: %v", ErrInternal, err)
	}

	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of company=%d", userID, companyID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of company=%d", userID, companyID)
	return ErrAccessDenied
}
