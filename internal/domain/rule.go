package domain

import "fmt"

// RuleType classifies the effect of a scheduling rule
type RuleType string

const (
	RuleTypeBuffer       RuleType = "buffer"
	RuleTypeBreak        RuleType = "break"
	RuleTypeOptimization RuleType = "optimization"
)

// RuleID identifies a scheduling rule. The set of rules is fixed;
// per-company overrides may change Enabled and Value, never the set itself.
type RuleID string

const (
	RuleServiceBuffer  RuleID = "service_buffer"
	RuleClientPrep     RuleID = "client_prep"
	RuleLunchBreak     RuleID = "lunch_break"
	RulePeakHours      RuleID = "peak_hours"
	RuleMaxConsecutive RuleID = "max_consecutive"
	RuleEndOfDayBuffer RuleID = "end_of_day_buffer"
)

// SchedulingRule represents a single scheduling rule with its current value
type SchedulingRule struct {
	ID      RuleID
	Name    string
	Enabled bool
	Value   int
	Type    RuleType
}

// Validate checks that the rule value is within bounds for its type
func (r SchedulingRule) Validate() error {
	switch r.Type {
	case RuleTypeBuffer, RuleTypeBreak:
		if r.Value < MinRuleBufferMinutes || r.Value > MaxRuleBufferMinutes {
			return fmt.Errorf("rule %s: value %d is out of range [%d, %d]",
				r.ID, r.Value, MinRuleBufferMinutes, MaxRuleBufferMinutes)
		}
	case RuleTypeOptimization:
		if r.Value < MinConsecutiveLimit || r.Value > MaxConsecutiveLimit {
			return fmt.Errorf("rule %s: value %d is out of range [%d, %d]",
				r.ID, r.Value, MinConsecutiveLimit, MaxConsecutiveLimit)
		}
	default:
		return fmt.Errorf("rule %s: unknown rule type %q", r.ID, r.Type)
	}
	return nil
}

// RuleSet is an ordered collection of scheduling rules.
// The order is fixed and matches DefaultRuleSet.
type RuleSet []SchedulingRule

// DefaultRuleSet returns the built-in rule set.
// Companies without stored overrides schedule with these values.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		{ID: RuleServiceBuffer, Name: "Buffer between appointments", Enabled: true, Value: 10, Type: RuleTypeBuffer},
		{ID: RuleClientPrep, Name: "Client preparation time", Enabled: true, Value: 5, Type: RuleTypeBuffer},
		{ID: RuleLunchBreak, Name: "Lunch break detection", Enabled: true, Value: 30, Type: RuleTypeBreak},
		{ID: RulePeakHours, Name: "Peak hours weighting", Enabled: true, Value: 10, Type: RuleTypeOptimization},
		{ID: RuleMaxConsecutive, Name: "Back-to-back limit", Enabled: true, Value: 4, Type: RuleTypeOptimization},
		{ID: RuleEndOfDayBuffer, Name: "End of day buffer", Enabled: true, Value: 30, Type: RuleTypeBuffer},
	}
}

// MergeOverrides returns a copy of the rule set with stored overrides applied.
// Overrides with unknown IDs are ignored.
func (rs RuleSet) MergeOverrides(overrides []SchedulingRule) RuleSet {
	merged := make(RuleSet, len(rs))
	copy(merged, rs)

	for _, override := range overrides {
		for i := range merged {
			if merged[i].ID == override.ID {
				merged[i].Enabled = override.Enabled
				merged[i].Value = override.Value
				break
			}
		}
	}

	return merged
}

// FindByID возвращает указатель на правило с указанным ID (nil, если не найдено)
func (rs RuleSet) FindByID(id RuleID) *SchedulingRule {
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i]
		}
	}
	return nil
}

// get возвращает правило по ID (нулевое правило, если не найдено)
func (rs RuleSet) get(id RuleID) SchedulingRule {
	for _, rule := range rs {
		if rule.ID == id {
			return rule
		}
	}
	return SchedulingRule{}
}

// enabledValue returns the rule value when enabled, 0 otherwise
func (rs RuleSet) enabledValue(id RuleID) int {
	rule := rs.get(id)
	if !rule.Enabled {
		return 0
	}
	return rule.Value
}

// ServiceBufferMinutes минуты буфера после каждой записи (0, если правило выключено)
func (rs RuleSet) ServiceBufferMinutes() int {
	return rs.enabledValue(RuleServiceBuffer)
}

// ClientPrepMinutes минуты на подготовку клиента перед записью (0, если выключено)
func (rs RuleSet) ClientPrepMinutes() int {
	return rs.enabledValue(RuleClientPrep)
}

// EndOfDayBufferMinutes буфер перед закрытием (0, если выключено)
func (rs RuleSet) EndOfDayBufferMinutes() int {
	return rs.enabledValue(RuleEndOfDayBuffer)
}

// LunchBreakEnabled включено ли определение обеденного перерыва
func (rs RuleSet) LunchBreakEnabled() bool {
	return rs.get(RuleLunchBreak).Enabled
}

// PeakHoursEnabled включено ли взвешивание пиковых часов
func (rs RuleSet) PeakHoursEnabled() bool {
	return rs.get(RulePeakHours).Enabled
}

// MaxConsecutiveAppointments лимит записей подряд.
// Возвращает (limit, true), если правило включено.
func (rs RuleSet) MaxConsecutiveAppointments() (int, bool) {
	rule := rs.get(RuleMaxConsecutive)
	if !rule.Enabled {
		return 0, false
	}
	return rule.Value, true
}
