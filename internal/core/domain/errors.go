package domain

// The service layer is the sole source of these three error kinds. The API
// layer selects a status code per kind and passes the message through
// verbatim; it never rewrites business error text.

// ValidationError means caller-supplied data is malformed or violates policy.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError { return &ValidationError{msg: msg} }

func (e *ValidationError) Error() string { return e.msg }

// ConflictError means the operation would violate a uniqueness invariant.
type ConflictError struct {
	msg string
}

func NewConflictError(msg string) *ConflictError { return &ConflictError{msg: msg} }

func (e *ConflictError) Error() string { return e.msg }

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(msg string) *NotFoundError { return &NotFoundError{msg: msg} }

func (e *NotFoundError) Error() string { return e.msg }

var (
	ErrNameTooShort     = NewValidationError("Name must be at least 6 characters.")
	ErrPasswordTooShort = NewValidationError("Password must be at least 6 characters.")
	ErrInvalidEmail     = NewValidationError("Invalid email format.")
	ErrRoleAlreadyHeld  = NewValidationError("User already has this role.")
	ErrEmailTaken       = NewConflictError("User with this email already exists.")
	ErrUserNotFound     = NewNotFoundError("User not found.")
	ErrRoleNotFound     = NewNotFoundError("Role not found.")
)
