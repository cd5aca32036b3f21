package categorize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/aquafin/backend/internal/category"
	"github.com/aquafin/backend/internal/parser"
)

// Engine evaluates the rule cascade. It is stateless across transactions:
// rules and dictionaries are fixed at construction, so a single Engine is
// safe for concurrent use.
//
// Matching targets: user rules and the keyword tier compare against the
// cleaned Description; the pattern tier compares against
// OriginalDescription, where raw bank codes (ADDEBITO SDD, PAGAMENTO POS)
// survive untouched.
type Engine struct {
	userRules []Rule
	compiled  map[string]*regexp.Regexp // rule ID -> compiled regex
	log       *logrus.Logger
}

// NewEngine builds an engine over the user's active rules. Rules are
// evaluated highest priority first, creation order breaking ties. Regex
// rules that fail to compile are skipped with a warning instead of poisoning
// the batch; pattern validity is the rule store's job, this is the last line
// of defense.
func NewEngine(userRules []Rule, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}

	rules := make([]Rule, len(userRules))
	copy(rules, userRules)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})

	compiled := make(map[string]*regexp.Regexp)
	for _, r := range rules {
		if r.MatchType != MatchRegex {
			continue
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			log.WithError(err).WithField("rule_id", r.ID).Warn("skipping rule with invalid regex")
			continue
		}
		compiled[r.ID] = re
	}

	return &Engine{userRules: rules, compiled: compiled, log: log}
}

// Categorize assigns exactly one category to the transaction. It never
// fails: when no tier matches, the fallback assignment is returned.
func (e *Engine) Categorize(tx parser.RawTransaction) CategoryAssignment {
	if a, ok := e.tryUserRules(tx.Description); ok {
		return a
	}
	if a, ok := tryKeywords(tx.Description); ok {
		return a
	}
	if a, ok := tryPatterns(tx.OriginalDescription); ok {
		return a
	}
	return fallback(tx.Type)
}

// CategorizeBatch categorizes transactions independently; output order
// matches input order so callers can zip results back to source rows.
func (e *Engine) CategorizeBatch(txs []parser.RawTransaction) []CategoryAssignment {
	assignments := make([]CategoryAssignment, len(txs))
	for i, tx := range txs {
		assignments[i] = e.Categorize(tx)
	}
	return assignments
}

func (e *Engine) tryUserRules(description string) (CategoryAssignment, bool) {
	descLower := strings.ToLower(description)
	for _, r := range e.userRules {
		if e.matchRule(descLower, r) {
			return CategoryAssignment{
				CategoryID: r.CategoryID,
				Confidence: 1.0,
				MatchedBy:  MatchedByUserRule,
				RuleID:     r.ID,
			}, true
		}
	}
	return CategoryAssignment{}, false
}

func (e *Engine) matchRule(descLower string, r Rule) bool {
	patternLower := strings.ToLower(r.Pattern)
	switch r.MatchType {
	case MatchContains:
		return strings.Contains(descLower, patternLower)
	case MatchExact:
		return strings.TrimSpace(descLower) == strings.TrimSpace(patternLower)
	case MatchStartsWith:
		return strings.HasPrefix(descLower, patternLower)
	case MatchRegex:
		re, ok := e.compiled[r.ID]
		if !ok {
			return false // failed to compile, already logged
		}
		return re.MatchString(descLower)
	}
	return false
}

func fallback(txType parser.TransactionType) CategoryAssignment {
	id := category.FallbackExpenseID
	if txType == parser.TypeIncome {
		id = category.FallbackIncomeID
	}
	return CategoryAssignment{
		CategoryID: id,
		Confidence: 0.0,
		MatchedBy:  MatchedByFallback,
	}
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents strips diacritics so "caffè" matches the keyword "caffe".
func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}

// hasWordBoundaryMatch reports whether sub occurs in s delimited by
// non-alphanumeric runes (or string edges) on both sides.
func hasWordBoundaryMatch(s, sub string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], sub)
		if i < 0 {
			return false
		}
		i += start

		before := true
		if i > 0 {
			r := []rune(s[:i])
			before = !isWordRune(r[len(r)-1])
		}
		after := true
		if end := i + len(sub); end < len(s) {
			r := []rune(s[end:])
			after = !isWordRune(r[0])
		}
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
