package enum

// CategoryType distinguishes main categories from subcategories in the tree.
type CategoryType string

const (
	CategoryTypeMain CategoryType = "main"
	CategoryTypeSub  CategoryType = "sub"
)

func (t CategoryType) IsValid() bool {
	return t == CategoryTypeMain || t == CategoryTypeSub
}
