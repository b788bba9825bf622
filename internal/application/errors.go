package application

import (
	"errors"
	"fmt"

	"sulu/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrIdentifierDrift  = errors.New("identifier drift")
	ErrTemplate         = errors.New("route template error")
	ErrSuffixExhausted  = errors.New("route suffixes exhausted")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing node in a workspace
type NotFoundError struct {
	Workspace domain.Workspace
	ID        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s node %s not found", e.Workspace, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MoveError represents a move-related failure
type MoveError struct {
	SourceID string
	DestID   string
	Reason   string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceID, e.DestID, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// DriftError reports a draft node whose live counterpart is missing
type DriftError struct {
	ID        string
	Operation string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%s %s: live counterpart missing", e.Operation, e.ID)
}

func (e *DriftError) Is(target error) bool {
	return target == ErrIdentifierDrift
}

// TemplateError represents a route template that cannot be evaluated
type TemplateError struct {
	Template string
	Field    string
	Reason   string
}

func (e *TemplateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("route template %q: field %s: %s", e.Template, e.Field, e.Reason)
	}
	return fmt.Sprintf("route template %q: %s", e.Template, e.Reason)
}

func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// ConflictError reports a route path that could not be disambiguated
type ConflictError struct {
	Path     string
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("no free route for %s after %d suffixes", e.Path, e.Attempts)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSuffixExhausted
}
