package reset_scheduling_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers"
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/rules"
)

const (
	msgInvalidCompanyID   = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "барбершоп не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/companies/{companyId}/scheduling-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /companies/{id}/scheduling-rules - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Декодируем body
	var req ResetRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /companies/{id}/scheduling-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сбрасываем правила к дефолтным значениям
	result, err := h.service.ResetRules(r.Context(), companyID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrCompanyNotFound):
			h.logger.Warn("DELETE /companies/{id}/scheduling-rules - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("DELETE /companies/{id}/scheduling-rules - Access denied: company_id=%d, user_id=%d",
				companyID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /companies/{id}/scheduling-rules - Failed to reset rules: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /companies/{id}/scheduling-rules - Rules reset successfully: company_id=%d, user_id=%d",
		companyID, req.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
