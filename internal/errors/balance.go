package errors

var (
	ErrBalanceNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "BALANCE_NOT_FOUND",
		Message: "seller balance not found",
	}
	ErrInsufficientBalance = &DomainError{
		Kind:    KindInsufficient,
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient available balance",
	}
	ErrInvalidAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
)
