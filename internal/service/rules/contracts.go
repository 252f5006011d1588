package rules

import (
	"context"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	"github.com/kosmatoff/BMS-SchedulingService/internal/integrations/staffservice"
)

// RuleRepository интерфейс репозитория правил планирования
type RuleRepository interface {
	GetByCompany(ctx context.Context, companyID int64) ([]domain.SchedulingRule, error)
	Upsert(ctx context.Context, companyID int64, rule domain.SchedulingRule) error
	DeleteByCompany(ctx context.Context, companyID int64) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*staffservice.Company, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
