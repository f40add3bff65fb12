package model

// WorkspaceCatalog is a consistent read of everything the readiness engine
// needs for one workspace.
type WorkspaceCatalog struct {
	WorkspaceID int64      `json:"workspaceId" validate:"gt=0"`
	Categories  []Category `json:"categories" validate:"dive"`
	Products    []Product  `json:"products" validate:"dive"`
	Recipes     []Recipe   `json:"recipes" validate:"dive"`
}
