package errors

var (
	ErrPaymentNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "PAYMENT_NOT_FOUND",
		Message: "payment not found",
	}
	ErrPaymentTerminal = &DomainError{
		Kind:    KindConflict,
		Code:    "PAYMENT_TERMINAL",
		Message: "payment is in a terminal state and cannot be transitioned",
	}
	ErrNoPendingPayments = &DomainError{
		Kind:    KindValidation,
		Code:    "NO_PENDING_PAYMENTS",
		Message: "no pending payments found for the provided IDs",
	}
)
