package model

// Category represents an income or expense category. Built-in categories
// are immutable and live in the static tables below; user-defined ones are
// persisted by the category repository and may be deleted.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Type  TransactionType `json:"type"`
}

// Fallback category identifiers. Transactions referencing a deleted custom
// category are reassigned here so no transaction ever points at a category
// that no longer exists.
const (
	FallbackExpenseID = "other_expense"
	FallbackIncomeID  = "other_income"
)

// ExpenseCategories is the built-in expense category table.
var ExpenseCategories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#FF6B6B", Type: TypeExpense},
	{ID: "transport", Name: "Transportation", Icon: "🚗", Color: "#4ECDC4", Type: TypeExpense},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#45B7D1", Type: TypeExpense},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#96CEB4", Type: TypeExpense},
	{ID: "health", Name: "Health & Medical", Icon: "🏥", Color: "#FFEAA7", Type: TypeExpense},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#DDA0DD", Type: TypeExpense},
	{ID: "bills", Name: "Bills & Utilities", Icon: "💡", Color: "#98D8C8", Type: TypeExpense},
	{ID: "clothes", Name: "Clothes", Icon: "👕", Color: "#F7DC6F", Type: TypeExpense},
	{ID: "laundry", Name: "Laundry", Icon: "👚", Color: "#BB8FCE", Type: TypeExpense},
	{ID: "home", Name: "Home & Garden", Icon: "🏠", Color: "#85C1E9", Type: TypeExpense},
	{ID: "personal", Name: "Personal Care", Icon: "💄", Color: "#F8C471", Type: TypeExpense},
	{ID: FallbackExpenseID, Name: "Other", Icon: "📦", Color: "#BDC3C7", Type: TypeExpense},
}

// IncomeCategories is the built-in income category table.
var IncomeCategories = []Category{
	{ID: "salary", Name: "Salary", Icon: "💰", Color: "#2ECC71", Type: TypeIncome},
	{ID: "freelance", Name: "Freelance", Icon: "💼", Color: "#3498DB", Type: TypeIncome},
	{ID: "investment", Name: "Investment", Icon: "📈", Color: "#E74C3C", Type: TypeIncome},
	{ID: "gift", Name: "Gift", Icon: "🎁", Color: "#9B59B6", Type: TypeIncome},
	{ID: "refund", Name: "Refund", Icon: "↩️", Color: "#F39C12", Type: TypeIncome},
	{ID: FallbackIncomeID, Name: "Other", Icon: "💵", Color: "#1ABC9C", Type: TypeIncome},
}

// FallbackCategoryID returns the reserved "Other" category for a type.
func FallbackCategoryID(t TransactionType) string {
	if t == TypeIncome {
		return FallbackIncomeID
	}
	return FallbackExpenseID
}

// BuiltinCategories returns the built-in table for the given type.
func BuiltinCategories(t TransactionType) []Category {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsBuiltinCategory reports whether id names a built-in category of any type.
func IsBuiltinCategory(id string) bool {
	for _, c := range ExpenseCategories {
		if c.ID == id {
			return true
		}
	}
	for _, c := range IncomeCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryByID looks up a category by id among the built-ins of the given
// type plus any custom categories of that type. Returns nil when unknown.
func CategoryByID(id string, t TransactionType, custom []Category) *Category {
	for _, c := range BuiltinCategories(t) {
		if c.ID == id {
			return &c
		}
	}
	for _, c := range custom {
		if c.Type == t && c.ID == id {
			return &c
		}
	}
	return nil
}
