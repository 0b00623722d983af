package models

// Expense is a single payment event: one member paid an amount that a set of
// members share equally.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is free text entered by the user (e.g., "Hotel").
	Description string `json:"description"`

	// Amount is the positive monetary value in the group's currency.
	Amount float64 `json:"amount"`

	// PaidBy is the member ID of the payer. At creation time it must
	// reference a current group member; if that member is later removed
	// the expense keeps the dangling ID.
	PaidBy string `json:"paid_by"`

	// SplitBetween is the non-empty, de-duplicated list of member IDs who
	// share the cost equally. The payer is not required to be included.
	SplitBetween []string `json:"split_between"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Clone returns a deep copy of the expense.
func (e Expense) Clone() Expense {
	c := e
	c.SplitBetween = make([]string, len(e.SplitBetween))
	copy(c.SplitBetween, e.SplitBetween)
	return c
}
