// Package category holds the system category catalog: the fixed Italian
// category tree every account starts with. The catalog is immutable and
// loaded once; user-defined categories live behind the external store and
// are out of scope here.
package category

// Category is display metadata for a spending or income category.
type Category struct {
	ID       string // stable slug, referenced by rules and dictionaries
	Name     string
	Icon     string
	Color    string
	Income   bool
	ParentID string // "" for top-level categories
}

// Sentinel fallback category IDs. Every transaction that no tier matches
// lands on one of these, depending on its direction.
const (
	FallbackExpenseID = "altro-spese"
	FallbackIncomeID  = "altro-entrate"
)

// System is the seeded category tree, ordered parent-first.
var System = []Category{
	{ID: "alimentari", Name: "Alimentari", Icon: "🛒", Color: "#4CAF50"},
	{ID: "supermercato", Name: "Supermercato", Icon: "🏪", Color: "#66BB6A", ParentID: "alimentari"},
	{ID: "ristorante", Name: "Ristorante", Icon: "🍽️", Color: "#81C784", ParentID: "alimentari"},
	{ID: "bar-caffe", Name: "Bar/Caffè", Icon: "☕", Color: "#A5D6A7", ParentID: "alimentari"},
	{ID: "delivery", Name: "Delivery", Icon: "🛵", Color: "#C8E6C9", ParentID: "alimentari"},

	{ID: "casa", Name: "Casa", Icon: "🏠", Color: "#2196F3"},
	{ID: "affitto-mutuo", Name: "Affitto/Mutuo", Icon: "🔑", Color: "#42A5F5", ParentID: "casa"},
	{ID: "utenze", Name: "Utenze", Icon: "💡", Color: "#64B5F6", ParentID: "casa"},
	{ID: "telefonia", Name: "Telefonia", Icon: "📞", Color: "#90CAF9", ParentID: "casa"},
	{ID: "manutenzione", Name: "Manutenzione", Icon: "🔧", Color: "#90CAF9", ParentID: "casa"},
	{ID: "assicurazione-casa", Name: "Assicurazione casa", Icon: "🛡️", Color: "#BBDEFB", ParentID: "casa"},

	{ID: "trasporti", Name: "Trasporti", Icon: "🚗", Color: "#FF9800"},
	{ID: "carburante", Name: "Carburante", Icon: "⛽", Color: "#FFA726", ParentID: "trasporti"},
	{ID: "trasporto-pubblico", Name: "Trasporto pubblico", Icon: "🚌", Color: "#FFB74D", ParentID: "trasporti"},
	{ID: "parcheggio", Name: "Parcheggio", Icon: "🅿️", Color: "#FFCC80", ParentID: "trasporti"},
	{ID: "manutenzione-auto", Name: "Manutenzione auto", Icon: "🔩", Color: "#FFE0B2", ParentID: "trasporti"},
	{ID: "assicurazione-auto", Name: "Assicurazione auto", Icon: "📋", Color: "#FFF3E0", ParentID: "trasporti"},

	{ID: "salute", Name: "Salute", Icon: "❤️", Color: "#F44336"},
	{ID: "farmacia", Name: "Farmacia", Icon: "💊", Color: "#EF5350", ParentID: "salute"},
	{ID: "visite-mediche", Name: "Visite mediche", Icon: "🩺", Color: "#E57373", ParentID: "salute"},
	{ID: "dentista", Name: "Dentista", Icon: "🦷", Color: "#EF9A9A", ParentID: "salute"},

	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#9C27B0"},
	{ID: "abbigliamento", Name: "Abbigliamento", Icon: "👕", Color: "#AB47BC", ParentID: "shopping"},
	{ID: "elettronica", Name: "Elettronica", Icon: "📱", Color: "#BA68C8", ParentID: "shopping"},
	{ID: "casa-arredo", Name: "Casa e arredo", Icon: "🪑", Color: "#CE93D8", ParentID: "shopping"},

	{ID: "svago", Name: "Svago", Icon: "🎉", Color: "#E91E63"},
	{ID: "cinema-teatro", Name: "Cinema/Teatro", Icon: "🎬", Color: "#EC407A", ParentID: "svago"},
	{ID: "sport", Name: "Sport", Icon: "⚽", Color: "#F06292", ParentID: "svago"},
	{ID: "viaggi", Name: "Viaggi", Icon: "✈️", Color: "#F48FB1", ParentID: "svago"},
	{ID: "hobby", Name: "Hobby", Icon: "🎨", Color: "#F8BBD0", ParentID: "svago"},

	{ID: "abbonamenti", Name: "Abbonamenti", Icon: "📺", Color: "#3F51B5"},
	{ID: "tasse", Name: "Tasse", Icon: "🏛️", Color: "#795548"},
	{ID: FallbackExpenseID, Name: "Altro spese", Icon: "📦", Color: "#9E9E9E"},

	{ID: "stipendio", Name: "Stipendio", Icon: "💰", Color: "#00897B", Income: true},
	{ID: "interessi", Name: "Interessi", Icon: "🏦", Color: "#26A69A", Income: true},
	{ID: "dividendi", Name: "Dividendi", Icon: "📈", Color: "#4DB6AC", Income: true},
	{ID: "rimborsi", Name: "Rimborsi", Icon: "↩️", Color: "#80CBC4", Income: true},
	{ID: FallbackIncomeID, Name: "Altro entrate", Icon: "📥", Color: "#B2DFDB", Income: true},
}

var byID = func() map[string]Category {
	m := make(map[string]Category, len(System))
	for _, c := range System {
		m[c.ID] = c
	}
	return m
}()

// ByID looks up a system category by its slug.
func ByID(id string) (Category, bool) {
	c, ok := byID[id]
	return c, ok
}
