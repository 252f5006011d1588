package update_scheduling_rules

import (
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules/models"
)

// UpdateRulesRequest HTTP request model
type UpdateRulesRequest struct {
	UserID int64        `json:"userId"`
	Rules  []RuleUpdate `json:"rules"`
}

// RuleUpdate изменение одного правила
type RuleUpdate struct {
	ID      string `json:"id"`
	Enabled *bool  `json:"enabled,omitempty"`
	Value   *int   `json:"value,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateRulesRequest) ToServiceRequest() *models.UpdateRulesRequest {
	updates := make([]models.RuleUpdate, len(r.Rules))
	for i, rule := range r.Rules {
		updates[i] = models.RuleUpdate{
			ID:      rule.ID,
			Enabled: rule.Enabled,
			Value:   rule.Value,
		}
	}

	return &models.UpdateRulesRequest{
		UserID: r.UserID,
		Rules:  updates,
	}
}
