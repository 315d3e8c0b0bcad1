package element

import "errors"

// Errors returned by element operations.
var (
	// ErrUnknownKind indicates an element kind tag outside the closed set.
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrUnknownField indicates a patch field name that no variant defines.
	ErrUnknownField = errors.New("unknown element field")

	// ErrFieldType indicates a patch value of the wrong type for its field.
	ErrFieldType = errors.New("invalid field value")
)
