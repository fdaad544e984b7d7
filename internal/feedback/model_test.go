package feedback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseboard/pulseboard/internal/feedback"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range []feedback.Type{
		feedback.TypePositive, feedback.TypeConstructive, feedback.TypeSuggestion, feedback.TypeConcern,
	} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, feedback.Type("").Valid())
	assert.False(t, feedback.Type("complaint").Valid())
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []feedback.Priority{feedback.PriorityLow, feedback.PriorityMedium, feedback.PriorityHigh} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, feedback.Priority("urgent").Valid())
}

func TestStatusValid(t *testing.T) {
	for _, s := range feedback.Statuses() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, feedback.Status("archived").Valid())
}

func TestFilterValid(t *testing.T) {
	for _, f := range []feedback.Filter{
		feedback.FilterAll, feedback.FilterPending, feedback.FilterAddressed, feedback.FilterClosed,
	} {
		assert.True(t, f.Valid(), string(f))
	}
	// in_review is a stored status but never a list filter.
	assert.False(t, feedback.Filter("in_review").Valid())
	assert.False(t, feedback.Filter("").Valid())
}
