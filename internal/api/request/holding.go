package request

// AddHoldingRequest represents the request body for adding a holding.
type AddHoldingRequest struct {
	Code string `json:"code"`
}

// UpdateHoldingRequest represents the request body for adjusting a position.
// Exactly one field is expected; when several are set, shares wins over
// cost, which wins over amount.
type UpdateHoldingRequest struct {
	Shares *float64 `json:"shares,omitempty"`
	Cost   *float64 `json:"cost,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// ImportHoldingsRequest represents the request body for a broker text import.
type ImportHoldingsRequest struct {
	Text string `json:"text"`
}
