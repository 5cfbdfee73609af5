package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// DatabaseError wraps Firestore failures with the logical operation that
// produced them.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError covers failures from hosted collaborators (the
// statistics API, the narrative model). Status carries the upstream HTTP
// status when one was observed, zero otherwise.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Status    int
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, status int, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Status:       status,
		Transient:    status == 0 || status >= 500,
		Err:          err,
	}
}
