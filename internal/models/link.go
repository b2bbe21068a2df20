package models

// List modes accepted by GET /api/links.
const (
	ModeOwn              = "own"
	ModeSharedUnwritable = "shared-unwritable"
	ModeSharedWritable   = "shared-writable"
)

// Link is a bookmark owned by one user.
// CategoryName is copied from the category when the link is written.
type Link struct {
	ID           string `json:"id" db:"id"`
	UserID       string `json:"userId" db:"user_id"`
	CreatedBy    string `json:"createdBy" db:"created_by"`
	CategoryID   string `json:"categoryId" db:"category_id"`
	CategoryName string `json:"categoryName" db:"category_name"`
	Name         string `json:"name" db:"name"`
	URL          string `json:"url" db:"url"`

	// Access is the caller's permission on the link ("owner", "writer", "reader").
	// Populated by list and get endpoints only.
	Access string `json:"access,omitempty" db:"-"`
}

// LinkFilter selects links visible to a user.
type LinkFilter struct {
	UserID     string
	Mode       string
	CategoryID string // empty or CategoryAll matches every category
	Name       string // case-insensitive substring
}

// IsValidMode reports whether mode is one of the list modes.
func IsValidMode(mode string) bool {
	switch mode {
	case ModeOwn, ModeSharedUnwritable, ModeSharedWritable:
		return true
	}
	return false
}

// MatchesAllCategories reports whether the filter has no category restriction.
func (f LinkFilter) MatchesAllCategories() bool {
	return f.CategoryID == "" || f.CategoryID == CategoryAll
}
