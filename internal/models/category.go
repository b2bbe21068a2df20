package models

// Category is seeded reference data used to group links.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CategoryAll is the filter sentinel matching every category.
const CategoryAll = "all"
