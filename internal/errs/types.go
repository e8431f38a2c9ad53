package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
	Field string
}

// UnauthenticatedError means no session identity is stored for the request.
type UnauthenticatedError struct {
	ErrorMessage
}

// ConflictError is returned when a controller is asked to start work while
// it is not idle (a read or write already in flight, or a terminal state).
type ConflictError struct {
	ErrorMessage
}

// ExternalServiceError wraps a failed call to the banking API. Transient
// errors are transport failures; the rest carry the HTTP status and the
// optional server-supplied message. Rejected marks a 2xx answer whose
// envelope said success=false.
type ExternalServiceError struct {
	ErrorMessage
	Service       string
	Status        int
	Transient     bool
	Rejected      bool
	ServerMessage string
	Err           error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
		Field:        field,
	}
}

func NewUnauthenticatedError() *UnauthenticatedError {
	return &UnauthenticatedError{
		ErrorMessage: ErrorMessage{Message: "no session identity"},
	}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewTransportError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", service, err)},
		Service:      service,
		Transient:    true,
		Err:          err,
	}
}

func NewStatusError(service string, status int, serverMessage string) *ExternalServiceError {
	msg := fmt.Sprintf("%s: status %d", service, status)
	if serverMessage != "" {
		msg = fmt.Sprintf("%s: status %d: %s", service, status, serverMessage)
	}
	return &ExternalServiceError{
		ErrorMessage:  ErrorMessage{Message: msg},
		Service:       service,
		Status:        status,
		ServerMessage: serverMessage,
	}
}

func NewRejectedError(service string, status int, serverMessage string) *ExternalServiceError {
	e := NewStatusError(service, status, serverMessage)
	e.Message = fmt.Sprintf("%s: request rejected", service)
	if serverMessage != "" {
		e.Message = fmt.Sprintf("%s: request rejected: %s", service, serverMessage)
	}
	e.Rejected = true
	return e
}

// DatabaseError wraps a failure of the session persistence backend.
type DatabaseError struct {
	ErrorMessage
	Op  string
	Err error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewDatabaseError(op, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Op:           op,
		Err:          err,
	}
}
