package recommend_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers"
	recommendSlots "github.com/kosmatoff/BMS-SchedulingService/internal/usecase/recommend_slots"
)

const (
	msgInvalidCompanyID = "некорректный ID барбершопа"
	msgInvalidBarberID  = "некорректный ID барбера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration  = "длительность услуги обязательна"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgCompanyNotFound  = "барбершоп не найден"
	msgBarberNotFound   = "барбер не найден"
)

type Handler struct {
	useCase RecommendSlotsUseCase
	logger  Logger
}

func NewHandler(useCase RecommendSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/slot-recommendations
// Query params: date (required, YYYY-MM-DD), durationMinutes (required), barberId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем companyId из URL
	companyIDStr := vars["companyId"]
	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slot-recommendations - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companies/{id}/slot-recommendations - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes из query параметров
	durationStr := r.URL.Query().Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /companies/{id}/slot-recommendations - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slot-recommendations - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Извлекаем barberId из query параметров (опционально)
	var barberID *int64
	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		id, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/slot-recommendations - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		barberID = &id
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(companyID, barberID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slot-recommendations - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, recommendSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/slot-recommendations - Invalid input: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, recommendSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/slot-recommendations - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, recommendSlots.ErrBarberNotFound):
			h.logger.Warn("GET /companies/{id}/slot-recommendations - Barber not found: company_id=%d, barber_id=%v",
				companyID, barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		default:
			h.logger.Error("GET /companies/{id}/slot-recommendations - Failed to recommend slots: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /companies/{id}/slot-recommendations - Recommendations retrieved successfully: company_id=%d, date=%s, slots_count=%d",
		companyID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
