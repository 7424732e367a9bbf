package api

// Public error messages returned in the "error" field. Causes of unexpected
// failures are logged, never exposed.
const (
	msgPersonNotFound = "Person not found"
	msgHeightNotFound = "Person's height is unknown"
	msgUnexpected     = "Unexpected error"
)
