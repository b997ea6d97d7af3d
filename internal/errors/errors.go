// Package errors defines the domain error values shared across services and
// handlers. Handlers map the error kind to an HTTP status.
package errors

// Error kinds.
const (
	KindValidation   = "VALIDATION"
	KindNotFound     = "NOT_FOUND"
	KindConflict     = "CONFLICT"
	KindInsufficient = "INSUFFICIENT_BALANCE"
	KindPersistence  = "PERSISTENCE"
)

// DomainError is a business error with a stable machine-readable code.
type DomainError struct {
	Kind    string
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// New returns a DomainError with the given kind, code and message.
func New(kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}
