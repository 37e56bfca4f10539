package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets of the typed errors below.
// Callers classify failures with errors.Is against these values.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrMissingAccount       = errors.New("account is not configured")
	ErrMissingPartnerConfig = errors.New("partner fee configuration is missing")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError is returned when a lookup by identifier finds nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause, typically a storage-layer error.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping the
// validation failure that explains why the value is invalid.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a required value is absent.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// MissingAccountError is returned when the account resolver cannot find an
// account for a purpose within a company. It is a configuration error: the
// operator must create or map the account before the operation can proceed.
type MissingAccountError struct {
	Purpose   string
	CompanyID string
	Cause     error
}

// NewMissingAccountError creates a MissingAccountError naming the purpose and company.
func NewMissingAccountError(purpose, companyID string) *MissingAccountError {
	return &MissingAccountError{Purpose: purpose, CompanyID: companyID}
}

// NewMissingAccountErrorWithCause creates a MissingAccountError wrapping a cause.
func NewMissingAccountErrorWithCause(purpose, companyID string, cause error) *MissingAccountError {
	return &MissingAccountError{Purpose: purpose, CompanyID: companyID, Cause: cause}
}

func (e *MissingAccountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: purpose is: %s, company is: %s (cause: %s)",
			ErrMissingAccount, e.Purpose, e.CompanyID, e.Cause)
	}
	return fmt.Sprintf("%s: purpose is: %s, company is: %s", ErrMissingAccount, e.Purpose, e.CompanyID)
}

func (e *MissingAccountError) Unwrap() error {
	return ErrMissingAccount
}

// MissingPartnerConfigError is returned when an order references a marketplace
// partner but no fee configuration resolves for that partner.
type MissingPartnerConfigError struct {
	PartnerID string
	Cause     error
}

// NewMissingPartnerConfigError creates a MissingPartnerConfigError naming the partner.
func NewMissingPartnerConfigError(partnerID string) *MissingPartnerConfigError {
	return &MissingPartnerConfigError{PartnerID: partnerID}
}

// NewMissingPartnerConfigErrorWithCause creates a MissingPartnerConfigError wrapping a cause.
func NewMissingPartnerConfigErrorWithCause(partnerID string, cause error) *MissingPartnerConfigError {
	return &MissingPartnerConfigError{PartnerID: partnerID, Cause: cause}
}

func (e *MissingPartnerConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: partner is: %s (cause: %s)", ErrMissingPartnerConfig, e.PartnerID, e.Cause)
	}
	return fmt.Sprintf("%s: partner is: %s", ErrMissingPartnerConfig, e.PartnerID)
}

func (e *MissingPartnerConfigError) Unwrap() error {
	return ErrMissingPartnerConfig
}
