package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuleSet(t *testing.T) {
	rules := DefaultRuleSet()

	require.Len(t, rules, 6)
	for _, rule := range rules {
		assert.True(t, rule.Enabled, "rule %s must be enabled by default", rule.ID)
		assert.NoError(t, rule.Validate())
	}

	assert.Equal(t, 10, rules.ServiceBufferMinutes())
	assert.Equal(t, 5, rules.ClientPrepMinutes())
	assert.Equal(t, 30, rules.EndOfDayBufferMinutes())
	assert.True(t, rules.LunchBreakEnabled())
	assert.True(t, rules.PeakHoursEnabled())

	limit, ok := rules.MaxConsecutiveAppointments()
	assert.True(t, ok)
	assert.Equal(t, 4, limit)
}

func TestRuleSet_MergeOverrides(t *testing.T) {
	rules := DefaultRuleSet()

	merged := rules.MergeOverrides([]SchedulingRule{
		{ID: RuleServiceBuffer, Enabled: true, Value: 20},
		{ID: RulePeakHours, Enabled: false},
		{ID: "unknown_rule", Enabled: true, Value: 99},
	})

	assert.Equal(t, 20, merged.ServiceBufferMinutes())
	assert.False(t, merged.PeakHoursEnabled())
	// Неизвестный override игнорируется, набор правил фиксирован
	assert.Len(t, merged, 6)

	// Исходный набор не изменяется
	assert.Equal(t, 10, rules.ServiceBufferMinutes())
	assert.True(t, rules.PeakHoursEnabled())
}

func TestRuleSet_DisabledRuleValueIsZero(t *testing.T) {
	rules := DefaultRuleSet().MergeOverrides([]SchedulingRule{
		{ID: RuleServiceBuffer, Enabled: false, Value: 10},
		{ID: RuleMaxConsecutive, Enabled: false, Value: 4},
	})

	assert.Equal(t, 0, rules.ServiceBufferMinutes())

	_, ok := rules.MaxConsecutiveAppointments()
	assert.False(t, ok)
}

func TestRuleSet_FindByID(t *testing.T) {
	rules := DefaultRuleSet()

	rule := rules.FindByID(RuleLunchBreak)
	require.NotNil(t, rule)
	assert.Equal(t, RuleLunchBreak, rule.ID)

	// Возвращается указатель на элемент набора
	rule.Enabled = false
	assert.False(t, rules.LunchBreakEnabled())

	assert.Nil(t, rules.FindByID("unknown_rule"))
}

func TestSchedulingRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    SchedulingRule
		wantErr bool
	}{
		{
			name: "buffer in range",
			rule: SchedulingRule{ID: RuleServiceBuffer, Type: RuleTypeBuffer, Value: 15},
		},
		{
			name: "buffer at upper bound",
			rule: SchedulingRule{ID: RuleServiceBuffer, Type: RuleTypeBuffer, Value: MaxRuleBufferMinutes},
		},
		{
			name:    "buffer negative",
			rule:    SchedulingRule{ID: RuleServiceBuffer, Type: RuleTypeBuffer, Value: -1},
			wantErr: true,
		},
		{
			name:    "buffer too large",
			rule:    SchedulingRule{ID: RuleEndOfDayBuffer, Type: RuleTypeBuffer, Value: MaxRuleBufferMinutes + 1},
			wantErr: true,
		},
		{
			name: "break in range",
			rule: SchedulingRule{ID: RuleLunchBreak, Type: RuleTypeBreak, Value: 45},
		},
		{
			name: "optimization in range",
			rule: SchedulingRule{ID: RuleMaxConsecutive, Type: RuleTypeOptimization, Value: 6},
		},
		{
			name:    "optimization too large",
			rule:    SchedulingRule{ID: RuleMaxConsecutive, Type: RuleTypeOptimization, Value: MaxConsecutiveLimit + 1},
			wantErr: true,
		},
		{
			name:    "unknown type",
			rule:    SchedulingRule{ID: RuleServiceBuffer, Type: "bogus", Value: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
