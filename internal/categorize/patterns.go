package categorize

import (
	"regexp"

	"github.com/aquafin/backend/internal/category"
)

// patternRule pairs a bank transaction code regex with a category and a
// confidence in the 0.4–0.7 band reserved for this tier.
type patternRule struct {
	re         *regexp.Regexp
	categoryID string
	confidence float64
}

// patternRules is the static dictionary of Italian bank transaction codes,
// matched against OriginalDescription in order: first match wins, so
// specific patterns sit above their generic variants (the SDD entries).
var patternRules = []patternRule{
	// Salary / payroll
	{regexp.MustCompile(`(?i)BONIFICO.*(STIPENDIO|RETRIBUZIONE|SALARIO|EMOLUMENT)`), "stipendio", 0.7},

	// Rent / mortgage
	{regexp.MustCompile(`(?i)BONIFICO.*(AFFITTO|CANONE\s+LOCAZIONE)`), "affitto-mutuo", 0.7},
	{regexp.MustCompile(`(?i)RATA\s+MUTUO|ADDEBITO\s+MUTUO`), "affitto-mutuo", 0.7},

	// Utility direct debits (SDD)
	{regexp.MustCompile(`(?i)ADDEBITO\s+SDD.*(ENEL|IREN|A2A|HERA|ACEA|SORGENIA|EDISON|ITALGAS)`), "utenze", 0.7},
	{regexp.MustCompile(`(?i)ADDEBITO\s+SDD.*(TIM|VODAFONE|WIND|ILIAD|FASTWEB)`), "telefonia", 0.7},
	{regexp.MustCompile(`(?i)ADDEBITO\s+SDD`), "utenze", 0.5},

	// Generic transfers, card payments, withdrawals
	{regexp.MustCompile(`(?i)BONIFICO\s+(DA|IN\s+FAVORE)`), category.FallbackExpenseID, 0.4},
	{regexp.MustCompile(`(?i)PAGAMENTO\s+POS`), category.FallbackExpenseID, 0.4},
	{regexp.MustCompile(`(?i)PRELIEVO\s+(BANCOMAT|ATM)`), category.FallbackExpenseID, 0.6},
	{regexp.MustCompile(`(?i)GIROCONTO`), category.FallbackExpenseID, 0.4},

	// Interest income
	{regexp.MustCompile(`(?i)ACCREDITO\s+COMPETENZE|INTERESSI\s+CREDITOR`), "interessi", 0.7},

	// Tolls
	{regexp.MustCompile(`(?i)PEDAGG|TELEPASS`), "parcheggio", 0.65},

	// Insurance
	{regexp.MustCompile(`(?i)ASSICURAZION.*AUTO|POLIZZA.*AUTO|\bRCA\b`), "assicurazione-auto", 0.7},
	{regexp.MustCompile(`(?i)ASSICURAZION.*CASA|POLIZZA.*CASA`), "assicurazione-casa", 0.7},

	// Taxes
	{regexp.MustCompile(`(?i)\bF24\b|TASSE|TRIBUT|IRPEF|\bIMU\b|\bTASI\b|\bTARI\b`), "tasse", 0.7},

	// Refunds
	{regexp.MustCompile(`(?i)RIMBORSO|STORNO`), "rimborsi", 0.65},

	// Dividends / coupons
	{regexp.MustCompile(`(?i)DIVIDENDO|CEDOLA|STACCO\s+CEDOLA`), "dividendi", 0.7},
}

// tryPatterns scans the bank-code dictionary against the raw description.
func tryPatterns(originalDescription string) (CategoryAssignment, bool) {
	for _, p := range patternRules {
		if p.re.MatchString(originalDescription) {
			return CategoryAssignment{
				CategoryID: p.categoryID,
				Confidence: p.confidence,
				MatchedBy:  MatchedByPattern,
			}, true
		}
	}
	return CategoryAssignment{}, false
}
