package reset_scheduling_rules

import (
	"context"

	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

type RuleService interface {
	ResetRules(ctx context.Context, companyID int64, req *models.ResetRulesRequest) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
