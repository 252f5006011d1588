package domain

// Default working window, used when the staff service has no schedule for the company
const (
	DefaultWorkdayOpenTime  = "09:00"
	DefaultWorkdayCloseTime = "18:00"
)

// Confidence scoring constants
const (
	BaseConfidence          = 85
	PeakHourConfidenceBonus = 10
	EveningConfidenceBonus  = 5
	BufferConfidenceBonus   = 5
	BackToBackPenalty       = 10

	// Minimal spare time after a slot that counts as a comfortable buffer
	ComfortBufferMinutes = 10
)

// Optimization scoring constants
const (
	BaseOptimizationScore    = 50
	PeakHourOptimization     = 30
	EveningOptimization      = 20
	OffHoursPenalty          = 20
	GoodSpacingBonus         = 15
	OverPackedPenalty        = 10
	GoodSpacingThreshold     = 2 // fewer consecutive appointments than this earns the spacing bonus
	OverPackedThreshold      = 3 // this many consecutive appointments or more is over-packed
	LunchBreakMinConsecutive = 2
)

// Time-of-day windows (hours, half-open ranges)
const (
	PeakStartHour    = 10
	PeakEndHour      = 14
	EveningStartHour = 16
	EveningEndHour   = 18
	OffHoursMorning  = 9  // hours before this are off-hours
	OffHoursEvening  = 18 // this hour and later are off-hours
	LunchStartHour   = 12
	LunchEndHour     = 14
)

// Recommendation limits
const (
	MaxRecommendations = 8

	// Two appointments closer than this are counted as consecutive (back-to-back)
	ConsecutiveAdjacencyMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinRuleBufferMinutes        = 0
	MaxRuleBufferMinutes        = 240
	MinConsecutiveLimit         = 0
	MaxConsecutiveLimit         = 20
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных записей
// Используется при подсчете занятости барбера
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByCompany,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
