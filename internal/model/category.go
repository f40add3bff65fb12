package model

// Category represents an ingredient category within a workspace.
// Categories form a two-level forest: a category has at most one parent and
// parents are never themselves children.
type Category struct {
	ID          int64  `json:"id" db:"id" validate:"gt=0"`
	WorkspaceID int64  `json:"workspaceId" db:"workspace_id"`
	Name        string `json:"name" db:"name"`
	ParentID    *int64 `json:"parentId,omitempty" db:"parent_id" validate:"omitempty,gt=0"`
	// GroupID is an orthogonal classification tag; it plays no part in matching.
	GroupID *int64 `json:"groupId,omitempty" db:"group_id" validate:"omitempty,gt=0"`
}

// HasParent reports whether the category belongs to a parent family.
func (c Category) HasParent() bool {
	return c.ParentID != nil
}
