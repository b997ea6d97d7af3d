package balance

// Summary totals a seller's balances across stores.
type Summary struct {
	TotalPending          float64 `json:"total_pending"`
	TotalAvailable        float64 `json:"total_available"`
	TotalLifetimeEarnings float64 `json:"total_lifetime_earnings"`
	TotalWithdrawals      float64 `json:"total_withdrawals"`
}

// UpsertRequest writes balance fields directly. This is the administrative
// override path; normal mutation goes through Credit/Debit.
type UpsertRequest struct {
	SellerID              uint    `json:"seller_id" validate:"required"`
	StoreID               uint    `json:"store_id" validate:"required"`
	PendingAmount         float64 `json:"pending_amount" validate:"gte=0"`
	AvailableAmount       float64 `json:"available_amount" validate:"gte=0"`
	TotalLifetimeEarnings float64 `json:"total_lifetime_earnings" validate:"gte=0"`
	TotalWithdrawals      float64 `json:"total_withdrawals" validate:"gte=0"`
	CommissionRate        float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}
