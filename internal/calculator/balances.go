// Package calculator implements the pure math of the group-expense ledger:
// net balance computation and greedy debt simplification. Both functions are
// deterministic, side-effect free, and cheap enough to run on every request.
package calculator

import (
	"log/slog"

	"github.com/splitpocket/splitpocket/internal/models"
)

// tolerance is the settled band for float money arithmetic: balances within
// ±tolerance of zero count as settled, and no transfer smaller than
// tolerance is ever emitted.
const tolerance = 0.01

// Balances computes each member's net balance from the group's expense list.
// Positive means the member is owed money, negative means the member owes.
//
// Every current member gets an entry, zero or not. An expense referencing an
// ID outside the member list (a since-removed member) still accumulates into
// that ID, so removed members can appear in the result with a nonzero
// balance.
//
// The sum of all returned balances is always within tolerance of zero.
func Balances(members []models.Member, expenses []models.Expense) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	for _, exp := range expenses {
		if len(exp.SplitBetween) == 0 {
			// Creation rejects empty splits, so this expense slipped in
			// through bad data. Skip it rather than divide by zero.
			slog.Warn("expense with no participants skipped", "expense_id", exp.ID)
			continue
		}

		share := exp.Amount / float64(len(exp.SplitBetween))
		for _, id := range exp.SplitBetween {
			balances[id] -= share
		}
		balances[exp.PaidBy] += exp.Amount
	}

	return balances
}
