package get_scheduling_rules

import (
	"context"

	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

type RuleService interface {
	GetEffectiveRules(ctx context.Context, companyID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
