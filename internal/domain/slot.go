package domain

import "github.com/kosmatoff/BMS-SchedulingService/pkg/types"

// CandidateSlot represents a recommended time slot for a new appointment.
// Slots are derived on every request and never persisted.
type CandidateSlot struct {
	BarberID        int64
	StartTime       types.TimeString
	EndTime         types.TimeString // always StartTime + DurationMinutes
	DurationMinutes int

	Confidence        int // 0-100
	OptimizationScore int // 0-100

	BufferBeforeMinutes int
	BufferAfterMinutes  int
	SuggestedBreak      bool

	// Reasoning lists score adjustments in the order they were applied
	Reasoning []string
}

// CombinedScore is the ranking key for recommendations
func (s *CandidateSlot) CombinedScore() int {
	return s.Confidence + s.OptimizationScore
}
