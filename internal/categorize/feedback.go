package categorize

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cleanup patterns for deriving a stable rule pattern from a raw
// description: payment-network prefixes, reference numbers, dates, amounts
// and long digit runs are transaction-specific noise, not merchant identity.
var (
	feedbackPrefixRe = regexp.MustCompile(`(?i)^(pagamento\s+pos\s+|pos\s+|eftpos\s+|visa\s+|mastercard\s+|amex\s+|paypal\s*\*|addebito\s+sdd\s+)`)
	feedbackDateRe   = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}(?:[/\-.]\d{2,4})?\b`)
	feedbackAmountRe = regexp.MustCompile(`-?\d+(?:[.,]\d{3})*[.,]\d{2}\b`)
	feedbackRefRe    = regexp.MustCompile(`#\w+`)
	feedbackDigitsRe = regexp.MustCompile(`\d{4,}`)
	feedbackPunctRe  = regexp.MustCompile(`[*#]+`)
)

// DeriveRuleFromCorrection turns a manual recategorization into a new user
// rule when the user asked to apply it to similar transactions. The pattern
// is the original description stripped of transaction-specific noise,
// lowercased and space-collapsed, so repeated derivations from the same
// description canonicalize identically and the rule store can dedup. The
// rule gets priority above every existing user rule: the newest correction
// wins fastest.
//
// Returns nil when applyToSimilar is false (a one-off override needs no
// rule) or when stripping leaves nothing usable.
func DeriveRuleFromCorrection(originalDescription, categoryID string, applyToSimilar bool, existing []Rule) *Rule {
	if !applyToSimilar {
		return nil
	}

	pattern := CanonicalPattern(originalDescription)
	if pattern == "" {
		return nil
	}

	maxPriority := 0
	for _, r := range existing {
		if r.Scope == ScopeUser && r.Priority > maxPriority {
			maxPriority = r.Priority
		}
	}

	return &Rule{
		ID:         uuid.NewString(),
		Pattern:    pattern,
		MatchType:  MatchContains,
		CategoryID: categoryID,
		Priority:   maxPriority + 1,
		Scope:      ScopeUser,
		CreatedAt:  time.Now().UTC(),
	}
}

// CanonicalPattern strips transaction-specific tokens from a description and
// normalizes case and spacing. It is deterministic: equal inputs always
// yield equal patterns.
func CanonicalPattern(description string) string {
	p := strings.ToLower(strings.TrimSpace(description))
	p = feedbackPrefixRe.ReplaceAllString(p, "")
	p = feedbackAmountRe.ReplaceAllString(p, " ")
	p = feedbackDateRe.ReplaceAllString(p, " ")
	p = feedbackRefRe.ReplaceAllString(p, " ")
	p = feedbackDigitsRe.ReplaceAllString(p, " ")
	p = feedbackPunctRe.ReplaceAllString(p, " ")
	return strings.Join(strings.Fields(p), " ")
}
