package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, nil)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

// NewNoCredential reports a request that carried no token at all.
func NewNoCredential(message string) error {
	return NewDomainError("NO_CREDENTIAL", message, http.StatusForbidden, nil)
}

// NewInvalidCredential reports a bad password or a bad/expired token.
func NewInvalidCredential(message string, err error) error {
	return NewDomainError("INVALID_CREDENTIAL", message, http.StatusUnauthorized, err)
}

// NewPersistenceError wraps a store failure. The caller-facing message is
// taken from err when it carries one, fallback otherwise.
func NewPersistenceError(err error, fallback string) error {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return NewDomainError("PERSISTENCE_FAILED", message, http.StatusInternalServerError, err)
}

// NewStoreFailure wraps a store failure behind a fixed message.
func NewStoreFailure(message string, err error) error {
	return NewDomainError("PERSISTENCE_FAILED", message, http.StatusInternalServerError, err)
}

func NewInternalError(err error) error {
	return NewDomainError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError, err)
}

// ConfigurationError is raised while wiring the process. It is fatal at
// startup and never rendered to a client.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(setting, reason string) error {
	return &ConfigurationError{Setting: setting, Reason: reason}
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code, err)
	}
	return NewDomainError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError, err)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}

// NewInternalErrorWithMessage is NewInternalError with a caller-facing message.
func NewInternalErrorWithMessage(message string, err error) error {
	return NewDomainError("INTERNAL_ERROR", message, http.StatusInternalServerError, err)
}
