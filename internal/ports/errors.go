package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors surfaced by ledger store implementations.
var (
	// ErrEntryNotFound indicates that no entry exists for the requested key.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDuplicateEntry indicates an append with an ID the store has
	// already retained.
	ErrDuplicateEntry = errors.New("duplicate entry id")
)

// StorageError represents an error from a ledger store operation.
// It includes the pair key and operation that failed.
type StorageError struct {
	// EvaluationID identifies the evaluation involved.
	EvaluationID string

	// VendorID identifies the pair's vendor, when applicable.
	VendorID string

	// RequirementID identifies the pair's requirement, when applicable.
	RequirementID string

	// Operation is the name of the store operation that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for StorageError.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: operation=%s, evaluation=%s, vendor=%s, requirement=%s, err=%v",
		e.Operation, e.EvaluationID, e.VendorID, e.RequirementID, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError creates a new StorageError with the given details.
func NewStorageError(evaluationID, vendorID, requirementID, operation string, err error) *StorageError {
	return &StorageError{
		EvaluationID:  evaluationID,
		VendorID:      vendorID,
		RequirementID: requirementID,
		Operation:     operation,
		Err:           err,
	}
}

// MetricsError represents an error from metrics collection operations.
type MetricsError struct {
	// Metric is the name of the metric being collected when the error
	// occurred.
	Metric string

	// Operation is the name of the metrics operation that failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for MetricsError.
func (e *MetricsError) Error() string {
	return fmt.Sprintf("metrics error: operation=%s, metric=%s, err=%v", e.Operation, e.Metric, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetricsError) Unwrap() error { return e.Err }
