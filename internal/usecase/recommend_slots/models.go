package recommend_slots

import (
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
)

// Request модель запроса на подбор слотов
type Request struct {
	CompanyID       int64     // ID барбершопа
	BarberID        *int64    // Фильтр по барберу (опционально, nil - все барберы)
	Date            time.Time // Дата для подбора слотов (без времени)
	DurationMinutes int       // Длительность услуги в минутах
}

// Response модель ответа с ранжированным списком слотов
type Response struct {
	CompanyID       int64                  // ID барбершопа
	Date            time.Time              // Дата, на которую подбирались слоты
	DurationMinutes int                    // Запрошенная длительность услуги
	Slots           []domain.CandidateSlot // Слоты, отсортированные по убыванию combined score (не более 8)
}
