package recommend_slots

import (
	"sort"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
)

// rankSlots сортирует кандидатов по убыванию combined score
// (optimization score + confidence) и возвращает не более
// domain.MaxRecommendations лучших.
//
// Сортировка стабильная: при равном combined score сохраняется порядок
// обнаружения слотов. Входной слайс не изменяется.
func rankSlots(slots []domain.CandidateSlot) []domain.CandidateSlot {
	ranked := make([]domain.CandidateSlot, len(slots))
	copy(ranked, slots)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore() > ranked[j].CombinedScore()
	})

	if len(ranked) > domain.MaxRecommendations {
		ranked = ranked[:domain.MaxRecommendations]
	}

	return ranked
}
