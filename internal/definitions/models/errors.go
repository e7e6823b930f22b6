package models

import "errors"

// Engine errors. Services wrap these with a domain error code; tests and handlers match
// them with errors.Is.
var (
	// State consistency.
	ErrInvalidValidDate        = errors.New("valid from date creates a gap or overlap with existing validity periods")
	ErrClosedValidityPeriod    = errors.New("validity period is closed")
	ErrDefinitionTextUnchanged = errors.New("definition text must change in at least one language for a new validity period")
	ErrPublishedVariableAccess = errors.New("field cannot be changed on a published variable definition")
	ErrInvalidStatusTransition = errors.New("variable status cannot move backwards")

	// Disallowed patch fields.
	ErrShortNameNotAllowed = errors.New("short name cannot be changed by a patch")
	ErrValidFromNotAllowed = errors.New("valid from cannot be changed by a patch")

	// Input validation.
	ErrMissingText             = errors.New("text is required in at least one language")
	ErrInvalidShortName        = errors.New("short name must match ^[a-z0-9_]+$")
	ErrCodeNotInClassification = errors.New("code is not a member of its classification")
	ErrInvalidStatus           = errors.New("unknown variable status")
	ErrShortNameTaken          = errors.New("short name is already in use")
)
