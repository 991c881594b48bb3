package domain

// CategoryType tells whether a category groups income or expenses.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// IsValid reports whether t is a known category type.
func (t CategoryType) IsValid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// DefaultCategoryIcon is used when a category is created without an icon.
const DefaultCategoryIcon = "folder"

// Category labels transactions. A nil UserID marks a shared default category.
type Category struct {
	CategoryID int64        `json:"id"`
	Name       string       `json:"name"`
	Icon       string       `json:"icon"`
	Type       CategoryType `json:"type"`
	UserID     *int64       `json:"userID,omitempty"`
}

// IsShared reports whether the category is a catalog default with no owner.
func (c Category) IsShared() bool {
	return c.UserID == nil
}

// VisibleTo reports whether userID may attach transactions to the category.
func (c Category) VisibleTo(userID int64) bool {
	return c.IsShared() || *c.UserID == userID
}

// DefaultCategories is the canonical shared category catalog. Names are unique.
var DefaultCategories = []Category{
	{Name: "Food", Icon: "utensils", Type: CategoryExpense},
	{Name: "Transport", Icon: "car", Type: CategoryExpense},
	{Name: "Housing", Icon: "home", Type: CategoryExpense},
	{Name: "Utilities", Icon: "bolt", Type: CategoryExpense},
	{Name: "Health", Icon: "heart-pulse", Type: CategoryExpense},
	{Name: "Entertainment", Icon: "film", Type: CategoryExpense},
	{Name: "Shopping", Icon: "shopping-bag", Type: CategoryExpense},
	{Name: "Other", Icon: "folder", Type: CategoryExpense},
	{Name: "Salary", Icon: "briefcase", Type: CategoryIncome},
	{Name: "Gifts", Icon: "gift", Type: CategoryIncome},
	{Name: "Investments", Icon: "chart-line", Type: CategoryIncome},
	{Name: "Other Income", Icon: "coins", Type: CategoryIncome},
}
