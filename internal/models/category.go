package models

// Category is a spending bucket. Parent is an organizational link only; it
// groups categories for display and never affects rule matching.
type Category struct {
	Name          string `csv:"CategoryName"`
	Parent        string `csv:"ParentCategory"`
	Description   string `csv:"Description"`
	IsUserDefined YesNo  `csv:"IsUserDefined"`
	CreatedDate   Date   `csv:"CreatedDate"`
}

// DefaultCategory is the category assigned when no rule matches a vendor.
const DefaultCategory = "Shopping & Retail"

// BuiltinCategories is the seed written on first run and the fallback
// aggregation order when the category store file is missing. The order here
// is the report order.
func BuiltinCategories() []Category {
	descriptions := []struct{ name, desc string }{
		{"Groceries & Markets", "Fresh food and grocery shopping"},
		{"Restaurants & Food", "Dining out and food delivery"},
		{"Shopping & Retail", "General shopping and retail stores"},
		{"Auto & Gas", "Vehicle fuel and gas stations"},
		{"Utilities Bills & Insurance", "Monthly bills and insurance payments"},
		{"Entertainment", "Movies, shows, and entertainment"},
		{"Health", "Healthcare and medical services"},
		{"Home & Services", "Home improvement and services"},
	}

	categories := make([]Category, 0, len(descriptions))
	for _, d := range descriptions {
		categories = append(categories, Category{
			Name:        d.name,
			Description: d.desc,
		})
	}
	return categories
}
