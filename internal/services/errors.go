package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorForbidden    ErrorCode = "forbidden"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
	ErrorUnauthorized ErrorCode = "unauthorized"
	ErrorStorage      ErrorCode = "storage"
)

// Schema validation rules, reported in order of first failure.
const (
	RuleMissingTitle        = "MissingTitle"
	RuleNoQuestions         = "NoQuestions"
	RuleMissingQuestionText = "MissingQuestionText"
	RuleInvalidKind         = "InvalidKind"
	RuleInvalidOptions      = "InvalidOptions"
)

// ServiceError carries a machine-readable code, an optional validation
// rule name and a human-readable message across the service boundary.
type ServiceError struct {
	Code    ErrorCode
	Rule    string
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}
func NewStorageError(msg string) error { return &ServiceError{Code: ErrorStorage, Message: msg} }

// NewValidationError reports a failed schema rule.
func NewValidationError(rule, msg string) error {
	return &ServiceError{Code: ErrorInvalid, Rule: rule, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
