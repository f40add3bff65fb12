package availability

import "barkeep/internal/model"

// Interchangeable reports whether a product tagged with category b can stand
// in for a requirement on category a. That holds when b is a itself, when a
// and b share a parent, or when b is a's parent.
//
// The relation is not symmetric. A product on the parent satisfies a
// requirement on the child, but a product on a child never satisfies a
// requirement on the parent.
func Interchangeable(a, b model.Category) bool {
	if a.ID == b.ID {
		return true
	}
	if a.ParentID == nil {
		return false
	}
	if b.ParentID != nil && *a.ParentID == *b.ParentID {
		return true
	}
	return b.ID == *a.ParentID
}
