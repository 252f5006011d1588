package get_scheduling_rules

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidCompanyID = "некорректный ID барбершопа"
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

// Handle GET /api/v1/companies/{companyId}/scheduling-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем companyId из URL
	vars := mux.Vars(r)
	companyIDStr := vars["companyId"]

	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/scheduling-rules - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Получаем эффективный набор правил
	result, err := h.service.GetEffectiveRules(r.Context(), companyID)
	if err != nil {
		h.logger.Error("GET /companies/{id}/scheduling-rules - Failed to get rules: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id}/scheduling-rules - Rules retrieved successfully: company_id=%d, rules_count=%d",
		companyID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
