package store

import (
	"context"
	"sync"

	"github.com/aquafin/backend/internal/categorize"
	"github.com/aquafin/backend/internal/category"
)

// MemoryStore implements RuleStore and CategoryLookup with in-memory maps,
// seeded with the system category catalog.
type MemoryStore struct {
	mu         sync.RWMutex
	rules      map[string][]categorize.Rule // user ID -> rules in insertion order
	categories map[string]category.Category
}

// NewMemoryStore creates an in-memory store seeded with the system
// categories.
func NewMemoryStore() *MemoryStore {
	categories := make(map[string]category.Category, len(category.System))
	for _, c := range category.System {
		categories[c.ID] = c
	}
	return &MemoryStore{
		rules:      make(map[string][]categorize.Rule),
		categories: categories,
	}
}

// ActiveRules returns a copy of the user's rules in insertion order.
func (s *MemoryStore) ActiveRules(ctx context.Context, userID string) ([]categorize.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]categorize.Rule, len(s.rules[userID]))
	copy(rules, s.rules[userID])
	return rules, nil
}

// SaveRule appends a rule, deduping on canonical pattern + category: saving
// the rule derived twice from the same correction is a no-op the second
// time.
func (s *MemoryStore) SaveRule(ctx context.Context, userID string, rule categorize.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := categorize.CanonicalPattern(rule.Pattern)
	for _, existing := range s.rules[userID] {
		if categorize.CanonicalPattern(existing.Pattern) == pattern && existing.CategoryID == rule.CategoryID {
			return nil
		}
	}
	s.rules[userID] = append(s.rules[userID], rule)
	return nil
}

// CategoryByID resolves a category from the seeded catalog.
func (s *MemoryStore) CategoryByID(ctx context.Context, id string) (category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return category.Category{}, ErrCategoryNotFound
	}
	return c, nil
}
