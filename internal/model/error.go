package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidWorkspace    = "INVALID_WORKSPACE"
	ErrCodeInvalidRecipe       = "INVALID_RECIPE"
	ErrCodeInvalidLimit        = "INVALID_LIMIT"
	ErrCodeRecipeNotFound      = "RECIPE_NOT_FOUND"
	ErrCodeSnapshotUnavailable = "SNAPSHOT_UNAVAILABLE"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidWorkspace    = NewDomainError(ErrCodeInvalidWorkspace, "Workspace ID must be a positive integer")
	ErrInvalidRecipe       = NewDomainError(ErrCodeInvalidRecipe, "Recipe ID must be a positive integer")
	ErrInvalidLimit        = NewDomainError(ErrCodeInvalidLimit, "Limit must be greater than zero")
	ErrRecipeNotFound      = NewDomainError(ErrCodeRecipeNotFound, "Recipe not found in workspace")
	ErrSnapshotUnavailable = NewDomainError(ErrCodeSnapshotUnavailable, "Inventory snapshot could not be loaded")
)
