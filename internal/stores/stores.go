// Package stores holds the static store catalog. The ledger references
// catalog entries by id but never owns or validates them.
package stores

// Category groups stores for the picker UI.
type Category string

// Known categories.
const (
	CategorySupermarket Category = "Supermarket"
	CategoryRestaurant  Category = "Restaurant"
	CategoryCafe        Category = "Cafe"
	CategoryOther       Category = "Other"
)

// Store is one catalog entry.
type Store struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Logo     string   `json:"logo"`
	Color    string   `json:"color"`
}

// Catalog is the built-in store list.
var Catalog = []Store{
	{ID: "shufersal", Name: "שופרסל", Category: CategorySupermarket, Logo: "שופרסל.jpg", Color: "#ee1c25"},
	{ID: "victory", Name: "ויקטורי", Category: CategorySupermarket, Logo: "ויקטורי.jpg", Color: "#2d3092"},
	{ID: "be-pharm", Name: "בי פארם", Category: CategorySupermarket, Logo: "בי פארם.png", Color: "#000000"},
	{ID: "ramy-levy", Name: "רמי לוי בשכונה", Category: CategorySupermarket, Logo: "רמי לוי בשכונה.jpg", Color: "#ed1c24"},
	{ID: "carrefour", Name: "קרפור", Category: CategorySupermarket, Logo: "קרפור.gif", Color: "#0055a4"},
	{ID: "king-store", Name: "קינג סטור", Category: CategorySupermarket, Logo: "קינג סטור.jpg", Color: "#000000"},
	{ID: "machsanei-hashuk", Name: "מחסני השוק", Category: CategorySupermarket, Logo: "מחסני השוק.jpg", Color: "#ed1c24"},
	{ID: "hahishuk", Name: "החישוק", Category: CategorySupermarket, Logo: "החישוק.png", Color: "#000000"},
	{ID: "shefa-birkat-hashem", Name: "שפע ברכת השם", Category: CategorySupermarket, Logo: "שפע ברכת השם.png", Color: "#000000"},
	{ID: "other", Name: "Other", Category: CategoryOther, Logo: "", Color: "#525252"},
}

// ByID returns the catalog entry for id, falling back to the generic
// "other" entry for unknown ids.
func ByID(id string) Store {
	var other Store
	for _, store := range Catalog {
		if store.ID == id {
			return store
		}
		if store.ID == "other" {
			other = store
		}
	}
	return other
}
