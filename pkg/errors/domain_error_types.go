package errors

import (
	"fmt"
	"net/http"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates a caller supplied an invalid argument
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainBusinessRuleError indicates a canvas rule would be broken
	DomainBusinessRuleError DomainErrorType = "BUSINESS_RULE_ERROR"

	// DomainNotFoundError indicates a node was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"
)

// DomainError is a reusable, comparable canvas error. Sentinels are matched
// with errors.Is by type and code and are never mutated after creation;
// call sites add context with fmt.Errorf("...: %w", ErrX).
type DomainError struct {
	Type       DomainErrorType `json:"type"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		StatusCode: domainErrorTypeToStatusCode(errorType),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// AppType maps the domain category onto the application error taxonomy.
func (e *DomainError) AppType() ErrorType {
	switch e.Type {
	case DomainValidationError, DomainBusinessRuleError:
		return ErrorTypeValidation
	case DomainNotFoundError:
		return ErrorTypeNotFound
	default:
		return ErrorTypeInternal
	}
}

func domainErrorTypeToStatusCode(errorType DomainErrorType) int {
	switch errorType {
	case DomainValidationError:
		return http.StatusBadRequest
	case DomainBusinessRuleError:
		return http.StatusUnprocessableEntity
	case DomainNotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	// Node errors
	ErrNodeNotFound = NewDomainError(
		DomainNotFoundError,
		"NODE_NOT_FOUND",
		"The requested node does not exist",
	)

	ErrUnknownKind = NewDomainError(
		DomainValidationError,
		"UNKNOWN_NODE_KIND",
		"Unsupported node kind",
	)

	ErrUnknownLayoutMode = NewDomainError(
		DomainValidationError,
		"UNKNOWN_LAYOUT_MODE",
		"Unsupported layout mode",
	)

	ErrCompositeViaForm = NewDomainError(
		DomainBusinessRuleError,
		"COMPOSITE_NOT_CREATABLE",
		"Composite nodes can only be created by merging",
	)

	// Container errors
	ErrNotACollection = NewDomainError(
		DomainValidationError,
		"NOT_A_COLLECTION",
		"Node is not a collection",
	)

	ErrNotAContainer = NewDomainError(
		DomainValidationError,
		"NOT_A_CONTAINER",
		"Node cannot hold children",
	)

	ErrNodeNotInCollection = NewDomainError(
		DomainBusinessRuleError,
		"NODE_NOT_IN_COLLECTION",
		"Node is not a direct child of the collection",
	)

	ErrRootRemoval = NewDomainError(
		DomainBusinessRuleError,
		"ROOT_NOT_REMOVABLE",
		"The root collection cannot be removed",
	)

	// Merge errors
	ErrSelfMerge = NewDomainError(
		DomainBusinessRuleError,
		"SELF_MERGE",
		"A node cannot be merged with itself",
	)

	ErrCyclicContainment = NewDomainError(
		DomainBusinessRuleError,
		"CYCLIC_CONTAINMENT",
		"A container cannot be placed inside its own subtree",
	)

	// Interaction errors
	ErrInteractionBusy = NewDomainError(
		DomainBusinessRuleError,
		"INTERACTION_BUSY",
		"Another pointer session is already active",
	)

	ErrNotDragging = NewDomainError(
		DomainBusinessRuleError,
		"NOT_DRAGGING",
		"Node is not being dragged",
	)
)
