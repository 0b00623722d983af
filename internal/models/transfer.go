package models

// Transfer is a directed settling payment: From should pay To the given
// amount. A list of transfers is the output of the debt simplifier and is
// derived on demand, never persisted.
type Transfer struct {
	// From is the member ID of the debtor.
	From string `json:"from"`

	// To is the member ID of the creditor.
	To string `json:"to"`

	// Amount is the strictly positive payment amount, rounded to the
	// currency's minor unit (two decimal places).
	Amount float64 `json:"amount"`
}
