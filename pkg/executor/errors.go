package executor

import "errors"

// Sentinel errors for node execution. These are wrapped into a NodeExecution
// kind error (see pkg/engine/errors.go) by the engine before they reach a
// caller, with the failing node's id attached.
var (
	// Input validation errors
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrInvalidInputValue    = errors.New("invalid input value")
	ErrNotAnArray           = errors.New("value is not an array")

	// HTTP errors
	ErrInvalidURL    = errors.New("invalid URL")
	ErrURLNotAllowed = errors.New("URL not allowed by security policy")

	// File errors
	ErrPathTraversal = errors.New("path traversal is not allowed")
	ErrEmptyPath     = errors.New("file path is empty")

	// Expression errors
	ErrInvalidExpression = errors.New("invalid expression")
	ErrEmptyCode         = errors.New("code is empty")

	// Regex errors
	ErrInvalidRegex    = errors.New("invalid regular expression")
	ErrPatternTooLarge = errors.New("regex pattern exceeds maximum length")
)
