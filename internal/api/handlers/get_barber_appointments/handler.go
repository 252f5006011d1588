package get_barber_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kosmatoff/BMS-SchedulingService/internal/api/handlers"
	"github.com/kosmatoff/BMS-SchedulingService/internal/api/middleware"
	"github.com/kosmatoff/BMS-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidCompanyID = "некорректный ID барбершопа"
	msgInvalidBarberID  = "некорректный ID барбера"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgCompanyNotFound  = "барбершоп не найден"
	msgBarberNotFound   = "барбер не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/barbers/{barberId}/appointments
// Query params: status, date, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем companyId из URL
	companyIDStr := vars["companyId"]
	companyID, err := strconv.ParseInt(companyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	// Извлекаем barberId из URL
	barberIDStr := vars["barberId"]
	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	statusStr := r.URL.Query().Get("status")
	dateStr := r.URL.Query().Get("date")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(companyID, barberID, userID, statusStr, dateStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем записи барбера (сервис сам проверит права менеджера)
	result, err := h.service.GetBarberAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, appointments.ErrBarberNotFound):
			h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Barber not found: company_id=%d, barber_id=%d",
				companyID, barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Access denied: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/barbers/{id}/appointments - Invalid input: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /companies/{id}/barbers/{id}/appointments - Failed to get appointments: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/barbers/{id}/appointments - Appointments retrieved successfully: company_id=%d, barber_id=%d, count=%d",
		companyID, barberID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
