package core

// Category is one of the fixed expense categories. The string value is the
// spelling persisted in the ledger table.
type Category string

const (
	ChildCare   Category = "Child Care"
	FuelPetrol  Category = "Fuel/ Petrol"
	Groceries   Category = "Groceries"
	HealthCare  Category = "Health Care/ Medical"
	Housing     Category = "Housing"
	Insurance   Category = "Insurance"
	Memberships Category = "Memberships/ Subscriptions"
	OtherDebt   Category = "Other Debt Payments"
	Personal    Category = "Personal/ Household"
	Travel      Category = "Travel/ Transportation"
	Utilities   Category = "Utilities (Electricity/Water/Gas)"
)

// categories lists every category in menu order; the menu code of a
// category is its index plus one.
var categories = []Category{
	ChildCare,
	FuelPetrol,
	Groceries,
	HealthCare,
	Housing,
	Insurance,
	Memberships,
	OtherDebt,
	Personal,
	Travel,
	Utilities,
}

// Categories returns all categories in menu order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryByCode returns the category for a 1-based menu code.
func CategoryByCode(code int) (Category, bool) {
	if code < 1 || code > len(categories) {
		return "", false
	}
	return categories[code-1], true
}

// Code returns the 1-based menu code, or 0 for an unknown category.
func (c Category) Code() int {
	for i, v := range categories {
		if v == c {
			return i + 1
		}
	}
	return 0
}

func (c Category) IsValid() bool {
	return c.Code() != 0
}

func (c Category) String() string {
	return string(c)
}
