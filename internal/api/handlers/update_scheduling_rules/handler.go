package update_scheduling_rules

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
	msgEmptyRules         = "список правил пуст"
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

// Handle PUT /api/v1/companies/{companyId}/scheduling-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /companies/{id}/scheduling-rules - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Декодируем body
	var req UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{id}/scheduling-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Rules) == 0 {
		h.logger.Warn("PUT /companies/{id}/scheduling-rules - Empty rules list: company_id=%d", companyID)
		handlers.RespondBadRequest(w, msgEmptyRules)
		return
	}

	// Конвертируем в модель сервиса
	serviceReq := req.ToServiceRequest()

	// Обновляем правила
	result, err := h.service.UpdateRules(r.Context(), companyID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrCompanyNotFound):
			h.logger.Warn("PUT /companies/{id}/scheduling-rules - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("PUT /companies/{id}/scheduling-rules - Access denied: company_id=%d, user_id=%d",
				companyID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /companies/{id}/scheduling-rules - Invalid input: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /companies/{id}/scheduling-rules - Failed to update rules: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companies/{id}/scheduling-rules - Rules updated successfully: company_id=%d, user_id=%d",
		companyID, req.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
