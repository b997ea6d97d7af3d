package errors

var (
	ErrSettlementNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "SETTLEMENT_NOT_FOUND",
		Message: "settlement not found",
	}
	ErrSettlementTerminal = &DomainError{
		Kind:    KindConflict,
		Code:    "SETTLEMENT_TERMINAL",
		Message: "settlement is in a terminal state and cannot be transitioned",
	}
	ErrSettlementCompleted = &DomainError{
		Kind:    KindConflict,
		Code:    "SETTLEMENT_COMPLETED",
		Message: "completed settlements cannot be deleted",
	}
	ErrDetailNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "SETTLEMENT_DETAIL_NOT_FOUND",
		Message: "settlement detail not found",
	}
	ErrDetailImmutable = &DomainError{
		Kind:    KindConflict,
		Code:    "SETTLEMENT_DETAIL_IMMUTABLE",
		Message: "settlement details are immutable once the settlement is completed",
	}
)
