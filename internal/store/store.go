// Package store defines the persistence contracts the import core consumes.
// The core never owns durable storage: rules and categories are supplied by
// a collaborating service, and these interfaces are the whole of what the
// core knows about it. The in-memory implementation backs the CLI and tests.
package store

import (
	"context"
	"errors"

	"github.com/aquafin/backend/internal/categorize"
	"github.com/aquafin/backend/internal/category"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// RuleStore supplies a user's active categorization rules and persists rules
// derived from corrections. SaveRule must dedup on canonical pattern and
// category: deriving the same correction twice creates one rule.
type RuleStore interface {
	ActiveRules(ctx context.Context, userID string) ([]categorize.Rule, error)
	SaveRule(ctx context.Context, userID string, rule categorize.Rule) error
}

// CategoryLookup resolves a category ID to its display metadata.
type CategoryLookup interface {
	CategoryByID(ctx context.Context, id string) (category.Category, error)
}
