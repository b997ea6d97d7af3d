package settlement

import (
	"veleco/internal/errors"
)

var (
	ErrInvalidPeriod = errors.New(errors.KindValidation, "INVALID_PERIOD",
		"settlement_period_start must be before settlement_period_end")
	ErrInvalidStatus = errors.New(errors.KindValidation, "INVALID_STATUS",
		"invalid settlement status")
	ErrInvalidPaymentMethod = errors.New(errors.KindValidation, "INVALID_PAYMENT_METHOD",
		"invalid payment method")
	ErrPendingNotAllowed = errors.New(errors.KindConflict, "PENDING_NOT_ALLOWED",
		"settlements cannot be transitioned back to PENDING")
)
