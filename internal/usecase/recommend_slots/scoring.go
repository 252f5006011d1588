package recommend_slots

import (
	"fmt"

	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
)

// slotScore результат оценки одного кандидата
type slotScore struct {
	confidence        int
	optimizationScore int
	suggestedBreak    bool
	reasoning         []string
}

// scoreCandidate вычисляет confidence и optimization score кандидата.
// Каждая поправка к confidence добавляет строку в reasoning в порядке применения.
// Детерминирована: одинаковый вход всегда дает одинаковый результат.
func scoreCandidate(candidate slotCandidate, rules domain.RuleSet) slotScore {
	hour := candidate.startMin / 60

	score := slotScore{
		confidence:        domain.BaseConfidence,
		optimizationScore: domain.BaseOptimizationScore,
		reasoning:         make([]string, 0, 4),
	}

	peakWeighting := rules.PeakHoursEnabled()
	isPeak := hour >= domain.PeakStartHour && hour < domain.PeakEndHour
	isEvening := hour >= domain.EveningStartHour && hour < domain.EveningEndHour
	isOffHours := hour < domain.OffHoursMorning || hour >= domain.OffHoursEvening

	// --- Confidence ---

	if peakWeighting && isPeak {
		score.confidence += domain.PeakHourConfidenceBonus
		score.reasoning = append(score.reasoning,
			fmt.Sprintf("Peak demand hours (%02d:00-%02d:00)", domain.PeakStartHour, domain.PeakEndHour))
	} else if peakWeighting && isEvening {
		score.confidence += domain.EveningConfidenceBonus
		score.reasoning = append(score.reasoning,
			fmt.Sprintf("Evening peak (%02d:00-%02d:00)", domain.EveningStartHour, domain.EveningEndHour))
	}

	if candidate.bufferAfterMin >= domain.ComfortBufferMinutes {
		score.confidence += domain.BufferConfidenceBonus
		score.reasoning = append(score.reasoning,
			fmt.Sprintf("Comfortable %d min buffer after the slot", candidate.bufferAfterMin))
	}

	if limit, ok := rules.MaxConsecutiveAppointments(); ok && candidate.consecutiveBefore >= limit {
		score.confidence -= domain.BackToBackPenalty
		score.reasoning = append(score.reasoning,
			fmt.Sprintf("Follows %d back-to-back appointments", candidate.consecutiveBefore))
	}

	// --- Optimization score ---

	switch {
	case peakWeighting && isPeak:
		score.optimizationScore += domain.PeakHourOptimization
	case peakWeighting && isEvening:
		score.optimizationScore += domain.EveningOptimization
	}

	if isOffHours {
		score.optimizationScore -= domain.OffHoursPenalty
	}

	if candidate.consecutiveBefore < domain.GoodSpacingThreshold {
		score.optimizationScore += domain.GoodSpacingBonus
	} else if candidate.consecutiveBefore >= domain.OverPackedThreshold {
		score.optimizationScore -= domain.OverPackedPenalty
	}

	// --- Lunch break suggestion ---

	if rules.LunchBreakEnabled() &&
		hour >= domain.LunchStartHour && hour < domain.LunchEndHour &&
		candidate.consecutiveBefore >= domain.LunchBreakMinConsecutive {
		score.suggestedBreak = true
		score.reasoning = append(score.reasoning, "Lunch window after a busy stretch, consider a break")
	}

	score.confidence = clampScore(score.confidence)
	score.optimizationScore = clampScore(score.optimizationScore)

	return score
}

// clampScore ограничивает оценку диапазоном [0, 100]
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
