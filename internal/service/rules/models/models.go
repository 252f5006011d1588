package models

import (
	"errors"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
)

var (
	// ErrUnknownRule возвращается при попытке обновить неизвестное правило
	ErrUnknownRule = errors.New("unknown scheduling rule")
)

// Request модели

// UpdateRulesRequest запрос на обновление правил планирования
// Обновляются только переданные правила, остальные сохраняют текущие значения
type UpdateRulesRequest struct {
	UserID int64        `json:"userId"`
	Rules  []RuleUpdate `json:"rules"`
}

// RuleUpdate изменение одного правила
// Enabled и Value опциональны - обновляются только переданные поля
type RuleUpdate struct {
	ID      string `json:"id"`
	Enabled *bool  `json:"enabled,omitempty"`
	Value   *int   `json:"value,omitempty"`
}

// ResetRulesRequest запрос на сброс правил к дефолтным значениям
type ResetRulesRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// RuleResponse ответ с данными одного правила
type RuleResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Value   int    `json:"value"`
	Type    string `json:"type"`
}

// RuleListResponse ответ с эффективным набором правил компании
type RuleListResponse struct {
	CompanyID int64          `json:"companyId"`
	Rules     []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRuleSet конвертирует domain модель в DTO
func FromDomainRuleSet(companyID int64, rules domain.RuleSet) *RuleListResponse {
	resp := &RuleListResponse{
		CompanyID: companyID,
		Rules:     make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		resp.Rules[i] = RuleResponse{
			ID:      string(rule.ID),
			Name:    rule.Name,
			Enabled: rule.Enabled,
			Value:   rule.Value,
			Type:    string(rule.Type),
		}
	}

	return resp
}

// ApplyToRuleSet применяет изменения к набору правил
// Обновляются только непустые (not nil) поля из request
func (r *UpdateRulesRequest) ApplyToRuleSet(rules domain.RuleSet) error {
	for _, update := range r.Rules {
		rule := rules.FindByID(domain.RuleID(update.ID))
		if rule == nil {
			return ErrUnknownRule
		}

		if update.Enabled != nil {
			rule.Enabled = *update.Enabled
		}
		if update.Value != nil {
			rule.Value = *update.Value
		}
	}

	return nil
}
