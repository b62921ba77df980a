package repo

import "fmt"

// ValidationError reports a missing required field on create or update.
// The operation is aborted with no state change.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NotFoundError reports an operation referencing an unknown bookmark id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bookmark %q not found", e.ID)
}

// DuplicateError reports a folder name collision. Nothing is created.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("folder %q already exists", e.Name)
}
