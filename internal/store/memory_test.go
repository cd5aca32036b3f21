package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquafin/backend/internal/categorize"
	"github.com/aquafin/backend/internal/category"
)

func TestMemoryStoreSaveAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rules, err := s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, rules)

	r1 := categorize.Rule{ID: "r1", Pattern: "esselunga", MatchType: categorize.MatchContains, CategoryID: "supermercato", Scope: categorize.ScopeUser}
	r2 := categorize.Rule{ID: "r2", Pattern: "netflix", MatchType: categorize.MatchContains, CategoryID: "abbonamenti", Scope: categorize.ScopeUser}
	require.NoError(t, s.SaveRule(ctx, "user-1", r1))
	require.NoError(t, s.SaveRule(ctx, "user-1", r2))

	rules, err = s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "r1", rules[0].ID)
	assert.Equal(t, "r2", rules[1].ID)

	// Other users see nothing
	other, err := s.ActiveRules(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

// Saving the rule derived twice from the same correction is a no-op the
// second time.
func TestMemoryStoreSaveRuleDedup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := categorize.DeriveRuleFromCorrection("BAR ROMA SATISPAY #4821", "bar-caffe", true, nil)
	require.NotNil(t, first)
	require.NoError(t, s.SaveRule(ctx, "user-1", *first))

	second := categorize.DeriveRuleFromCorrection("BAR ROMA SATISPAY #9999", "bar-caffe", true, nil)
	require.NotNil(t, second)
	require.NoError(t, s.SaveRule(ctx, "user-1", *second))

	rules, err := s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	// Same pattern, different category is a distinct rule
	third := categorize.DeriveRuleFromCorrection("BAR ROMA SATISPAY #4821", "ristorante", true, nil)
	require.NotNil(t, third)
	require.NoError(t, s.SaveRule(ctx, "user-1", *third))

	rules, err = s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestMemoryStoreActiveRulesCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveRule(ctx, "user-1", categorize.Rule{ID: "r1", Pattern: "x", CategoryID: "shopping"}))

	rules, err := s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	rules[0].Pattern = "mutated"

	again, err := s.ActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "x", again[0].Pattern)
}

func TestMemoryStoreCategoryByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c, err := s.CategoryByID(ctx, category.FallbackExpenseID)
	require.NoError(t, err)
	assert.Equal(t, category.FallbackExpenseID, c.ID)
	assert.NotEmpty(t, c.Name)

	_, err = s.CategoryByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
