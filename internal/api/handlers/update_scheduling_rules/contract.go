package update_scheduling_rules

import (
	"context"

	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

type RuleService interface {
	UpdateRules(ctx context.Context, companyID int64, req *models.UpdateRulesRequest) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
