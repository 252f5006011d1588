package reset_scheduling_rules

import (
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

// ResetRulesRequest HTTP request model
type ResetRulesRequest struct {
	UserID int64 `json:"userId"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ResetRulesRequest) ToServiceRequest() *models.ResetRulesRequest {
	return &models.ResetRulesRequest{
		UserID: r.UserID,
	}
}
