// Package categorize assigns a category to every normalized transaction via
// a prioritized, short-circuiting cascade: user rules, then a keyword
// dictionary, then bank-code regex patterns, then a fallback. It never fails:
// the worst case is a zero-confidence fallback assignment.
package categorize

import "time"

// MatchType selects how a rule pattern is compared against a description.
type MatchType string

const (
	MatchContains   MatchType = "contains"    // case-insensitive substring
	MatchExact      MatchType = "exact"       // case-insensitive full-string equality after trim
	MatchRegex      MatchType = "regex"       // compiled regular expression search
	MatchStartsWith MatchType = "starts_with" // case-insensitive prefix
)

// RuleScope separates user-created rules from the shipped dictionaries.
type RuleScope string

const (
	ScopeUser   RuleScope = "user"
	ScopeSystem RuleScope = "system"
)

// Rule is a categorization rule. User rules always outrank the system
// dictionaries; among user rules, higher Priority wins and CreatedAt breaks
// ties (earliest first).
type Rule struct {
	ID         string    `json:"id"`
	Pattern    string    `json:"pattern"`
	MatchType  MatchType `json:"match_type"`
	CategoryID string    `json:"category_id"`
	Priority   int       `json:"priority"`
	Scope      RuleScope `json:"scope"`
	CreatedAt  time.Time `json:"created_at"`
}

// MatchedBy names the cascade tier that produced an assignment.
type MatchedBy string

const (
	MatchedByUserRule MatchedBy = "user_rule"
	MatchedByKeyword  MatchedBy = "keyword"
	MatchedByPattern  MatchedBy = "pattern"
	MatchedByFallback MatchedBy = "fallback"
)

// CategoryAssignment is the engine's verdict for one transaction.
type CategoryAssignment struct {
	CategoryID string
	Confidence float64 // 0.0 – 1.0
	MatchedBy  MatchedBy
	RuleID     string // set only when MatchedBy is user_rule
}
