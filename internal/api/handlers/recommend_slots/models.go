package recommend_slots

import (
	"time"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
	recommendSlots "github.com/kosmatoff/BMS-SchedulingService/internal/usecase/recommend_slots"
)

// SlotRecommendationsResponse HTTP response model
type SlotRecommendationsResponse struct {
	CompanyID       int64             `json:"companyId"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"durationMinutes"`
	Slots           []RecommendedSlot `json:"slots"`
}

// RecommendedSlot модель рекомендованного слота
type RecommendedSlot struct {
	BarberID            int64    `json:"barberId"`
	StartTime           string   `json:"startTime"`
	EndTime             string   `json:"endTime"`
	DurationMinutes     int      `json:"durationMinutes"`
	Confidence          int      `json:"confidence"`
	OptimizationScore   int      `json:"optimizationScore"`
	BufferBeforeMinutes int      `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int      `json:"bufferAfterMinutes"`
	SuggestedBreak      bool     `json:"suggestedBreak"`
	Reasoning           []string `json:"reasoning"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recommendSlots.Response) *SlotRecommendationsResponse {
	slots := make([]RecommendedSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = RecommendedSlot{
			BarberID:            slot.BarberID,
			StartTime:           slot.StartTime.String(),
			EndTime:             slot.EndTime.String(),
			DurationMinutes:     slot.DurationMinutes,
			Confidence:          slot.Confidence,
			OptimizationScore:   slot.OptimizationScore,
			BufferBeforeMinutes: slot.BufferBeforeMinutes,
			BufferAfterMinutes:  slot.BufferAfterMinutes,
			SuggestedBreak:      slot.SuggestedBreak,
			Reasoning:           slot.Reasoning,
		}
	}

	return &SlotRecommendationsResponse{
		CompanyID:       resp.CompanyID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(companyID int64, barberID *int64, dateStr string, durationMinutes int) (*recommendSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &recommendSlots.Request{
		CompanyID:       companyID,
		BarberID:        barberID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}
