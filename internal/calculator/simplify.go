package calculator

import (
	"math"
	"sort"

	"github.com/splitpocket/splitpocket/internal/models"
)

// side is one end of the debt matching: a member ID and the positive
// magnitude still to settle.
type side struct {
	id     string
	amount float64
}

// Simplify reduces a balance map to a small list of settling transfers using
// greedy largest-first matching. It is the standard debt-simplification
// heuristic: not the global optimum in every pathological case, but
// deterministic, and it never emits more than debtors+creditors-1 transfers.
//
// Members whose rounded balance is within the settled band are excluded
// entirely. Every emitted transfer has a strictly positive amount rounded to
// two decimals, and applying all transfers drives every balance to within
// the settled band of zero.
func Simplify(balances map[string]float64) []models.Transfer {
	var debtors, creditors []side
	for id, bal := range balances {
		bal = round2(bal)
		switch {
		case bal < -tolerance:
			debtors = append(debtors, side{id: id, amount: -bal})
		case bal > tolerance:
			creditors = append(creditors, side{id: id, amount: bal})
		}
	}

	// Largest-first pairing tends to minimize the number of transfers.
	// The ID tie-break keeps the output deterministic across map
	// iteration orders.
	byAmountDesc := func(s []side) func(int, int) bool {
		return func(i, j int) bool {
			if s[i].amount != s[j].amount {
				return s[i].amount > s[j].amount
			}
			return s[i].id < s[j].id
		}
	}
	sort.Slice(debtors, byAmountDesc(debtors))
	sort.Slice(creditors, byAmountDesc(creditors))

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		settle := math.Min(debtors[i].amount, creditors[j].amount)

		if settle > tolerance {
			transfers = append(transfers, models.Transfer{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: round2(settle),
			})
		}

		debtors[i].amount -= settle
		creditors[j].amount -= settle

		// Both cursors may advance in the same step when the amounts
		// matched exactly.
		if debtors[i].amount < tolerance {
			i++
		}
		if creditors[j].amount < tolerance {
			j++
		}
	}

	return transfers
}

// round2 rounds to the currency's minor-unit precision to suppress
// floating-point noise before comparisons.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
