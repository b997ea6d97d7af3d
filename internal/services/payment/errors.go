package payment

import (
	"veleco/internal/errors"
)

var (
	ErrZeroAmount = errors.New(errors.KindValidation, "ZERO_AMOUNT",
		"payment amount must be nonzero")
	ErrInvalidStatus = errors.New(errors.KindValidation, "INVALID_STATUS",
		"invalid payment status")
	ErrInvalidPaymentMethod = errors.New(errors.KindValidation, "INVALID_PAYMENT_METHOD",
		"invalid payment method")
	ErrPendingNotAllowed = errors.New(errors.KindConflict, "PENDING_NOT_ALLOWED",
		"payments cannot be transitioned back to PENDING")
)
