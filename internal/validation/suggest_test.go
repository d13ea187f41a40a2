package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"goal-1", "goal-2", "service-order", "driver-1"}

	assert.Equal(t, "Did you mean 'goal-1'?", suggestSimilar("gaol-1", candidates))
	assert.Equal(t, "Did you mean 'service-order'?", suggestSimilar("service-ordre", candidates))
	assert.Equal(t, "", suggestSimilar("compliance-rule-7", candidates))
	assert.Equal(t, "", suggestSimilar("x", nil))
}

func TestSuggestSimilar_SkipsExactMatch(t *testing.T) {
	// The missing id itself may appear in the candidate list when an
	// element exists but fails some other check; it is never a useful hint.
	assert.Equal(t, "", suggestSimilar("goal-1", []string{"goal-1"}))
}
