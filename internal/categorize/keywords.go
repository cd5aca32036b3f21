package categorize

import (
	"sort"
	"strings"
)

// Keyword tier confidences. A keyword found between word boundaries is a
// stronger signal than one buried inside a longer token, so it scores
// higher; both stay within the 0.5–0.9 band reserved for this tier.
const (
	keywordWordConfidence      = 0.85
	keywordSubstringConfidence = 0.65
)

// Keywords shorter than this must match on a word boundary: a bare
// substring hit on "bar" inside "BARCLAYS" is noise, not a signal.
const keywordMinSubstringLen = 4

// keywordMap maps lowercased, accent-folded Italian keywords and well-known
// merchant names to system category IDs. Checked against the cleaned
// description, longest keyword first so more specific entries win.
//
// Utility and telco creditors (ENEL, IREN, TIM, ...) are deliberately
// absent: those descriptions carry an ADDEBITO SDD code and the pattern tier
// owns them.
var keywordMap = map[string]string{
	// Groceries
	"supermercato": "supermercato",
	"ipermercato":  "supermercato",
	"esselunga":    "supermercato",
	"carrefour":    "supermercato",
	"conad":        "supermercato",
	"coop":         "supermercato",
	"lidl":         "supermercato",
	"eurospin":     "supermercato",
	"penny market": "supermercato",
	"pam":          "supermercato",
	"despar":       "supermercato",
	"aldi":         "supermercato",
	"bennet":       "supermercato",
	"famila":       "supermercato",

	// Eating out
	"ristorante":  "ristorante",
	"pizzeria":    "ristorante",
	"trattoria":   "ristorante",
	"osteria":     "ristorante",
	"sushi":       "ristorante",
	"mcdonald":    "ristorante",
	"burger king": "ristorante",
	"kebab":       "ristorante",
	"paninoteca":  "ristorante",
	"bar":         "bar-caffe",
	"caffe":       "bar-caffe",
	"caffetteria": "bar-caffe",
	"pasticceria": "bar-caffe",
	"gelateria":   "bar-caffe",

	// Delivery
	"deliveroo": "delivery",
	"glovo":     "delivery",
	"just eat":  "delivery",
	"justeat":   "delivery",
	"uber eats": "delivery",

	// Home
	"affitto":    "affitto-mutuo",
	"mutuo":      "affitto-mutuo",
	"bolletta":   "utenze",
	"luce e gas": "utenze",
	"condominio": "casa",

	// Transport
	"benzina":      "carburante",
	"carburante":   "carburante",
	"distributore": "carburante",
	"esso":         "carburante",
	"tamoil":       "carburante",
	"q8":           "carburante",
	"trenitalia":   "trasporto-pubblico",
	"italo":        "trasporto-pubblico",
	"atm milano":   "trasporto-pubblico",
	"autobus":      "trasporto-pubblico",
	"parcheggio":   "parcheggio",
	"parking":      "parcheggio",
	"telepass":     "parcheggio",
	"officina":     "manutenzione-auto",
	"gommista":     "manutenzione-auto",
	"autolavaggio": "manutenzione-auto",

	// Health
	"farmacia":         "farmacia",
	"parafarmacia":     "farmacia",
	"dentista":         "dentista",
	"oculista":         "visite-mediche",
	"ospedale":         "visite-mediche",
	"studio medico":    "visite-mediche",
	"poliambulatorio":  "visite-mediche",
	"analisi cliniche": "visite-mediche",

	// Shopping
	"zalando":      "abbigliamento",
	"ovs":          "abbigliamento",
	"primark":      "abbigliamento",
	"decathlon":    "sport",
	"mediaworld":   "elettronica",
	"unieuro":      "elettronica",
	"euronics":     "elettronica",
	"ikea":         "casa-arredo",
	"leroy merlin": "casa-arredo",
	"feltrinelli":  "hobby",
	"mondadori":    "hobby",
	"amazon":       "shopping",

	// Subscriptions & leisure
	"netflix":         "abbonamenti",
	"spotify":         "abbonamenti",
	"disney plus":     "abbonamenti",
	"dazn":            "abbonamenti",
	"amazon prime":    "abbonamenti",
	"prime video":     "abbonamenti",
	"youtube premium": "abbonamenti",
	"audible":         "abbonamenti",
	"now tv":          "abbonamenti",
	"abbonamento":     "abbonamenti",
	"cinema":          "cinema-teatro",
	"teatro":          "cinema-teatro",
	"concerto":        "cinema-teatro",
	"ticketone":       "cinema-teatro",
	"palestra":        "sport",
	"piscina":         "sport",

	// Travel
	"hotel":          "viaggi",
	"albergo":        "viaggi",
	"airbnb":         "viaggi",
	"booking":        "viaggi",
	"expedia":        "viaggi",
	"agenzia viaggi": "viaggi",
	"ryanair":        "viaggi",
	"easyjet":        "viaggi",
	"volotea":        "viaggi",
	"wizz air":       "viaggi",

	// Income & taxes
	"stipendio":       "stipendio",
	"rimborso":        "rimborsi",
	"dividendo":       "dividendi",
	"agenzia entrate": "tasse",
	"bollo auto":      "tasse",
}

// keywordsByLength holds the dictionary keys longest first (alphabetical on
// equal length) so scanning order is deterministic and specific entries win.
var keywordsByLength = func() []string {
	keys := make([]string, 0, len(keywordMap))
	for k := range keywordMap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// tryKeywords scans the keyword dictionary against the lowercased,
// accent-folded description.
func tryKeywords(description string) (CategoryAssignment, bool) {
	folded := foldAccents(strings.ToLower(description))
	for _, kw := range keywordsByLength {
		if !strings.Contains(folded, kw) {
			continue
		}
		onBoundary := hasWordBoundaryMatch(folded, kw)
		if !onBoundary && len(kw) < keywordMinSubstringLen {
			continue
		}
		confidence := keywordSubstringConfidence
		if onBoundary {
			confidence = keywordWordConfidence
		}
		return CategoryAssignment{
			CategoryID: keywordMap[kw],
			Confidence: confidence,
			MatchedBy:  MatchedByKeyword,
		}, true
	}
	return CategoryAssignment{}, false
}
