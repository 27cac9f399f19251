/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a stream does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when creating a stream whose name is taken
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransient is returned for service errors that are not NotFound
	ErrTransient = errors.New("service error")

	// ErrTimeout is returned when a wait exceeds its deadline
	ErrTimeout = errors.New("wait timed out")

	// ErrConfiguration is returned when configuration or credentials are unavailable
	ErrConfiguration = errors.New("configuration error")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Type string
	Key  string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// AlreadyExistsError represents an error when a resource already exists
type AlreadyExistsError struct {
	Type string
	Key  string
	Err  error
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TransientError wraps a service-side failure of a single operation.
// It is not retried by this library.
type TransientError struct {
	Operation string
	Err       error
}

func (e *TransientError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Operation)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when a resource did not reach the expected state in time
type TimeoutError struct {
	Resource string
	Target   string
	Waited   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not become %s within %s", e.Resource, e.Target, e.Waited)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// ConfigurationError represents missing or unusable configuration, such as credentials
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid configuration for %s", e.Setting)
	}
	return fmt.Sprintf("invalid configuration for %s: %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resourceType, key string, cause error) error {
	return &NotFoundError{Type: resourceType, Key: key, Err: cause}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resourceType, key string, cause error) error {
	return &AlreadyExistsError{Type: resourceType, Key: key, Err: cause}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewTransientError creates a new TransientError
func NewTransientError(operation string, cause error) error {
	return &TransientError{Operation: operation, Err: cause}
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(resource, target string, waited time.Duration) error {
	return &TimeoutError{Resource: resource, Target: target, Waited: waited}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(setting string, cause error) error {
	return &ConfigurationError{Setting: setting, Err: cause}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransient checks if an error is a transient service error
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
