package calculator

import (
	"math"
	"testing"

	"github.com/splitpocket/splitpocket/internal/models"
)

// applyTransfers replays the transfers against a copy of the balances and
// returns the result, for checks that the plan actually settles everyone.
func applyTransfers(balances map[string]float64, transfers []models.Transfer) map[string]float64 {
	after := make(map[string]float64, len(balances))
	for id, bal := range balances {
		after[id] = bal
	}
	for _, tr := range transfers {
		after[tr.From] += tr.Amount
		after[tr.To] -= tr.Amount
	}
	return after
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]float64
		want     []models.Transfer
	}{
		{
			name:     "empty balances",
			balances: map[string]float64{},
			want:     nil,
		},
		{
			name:     "all settled within tolerance",
			balances: map[string]float64{"A": 0.004, "B": -0.004, "C": 0},
			want:     nil,
		},
		{
			name:     "single creditor absorbs all debtors",
			balances: map[string]float64{"A": 200, "B": -100, "C": -100},
			want: []models.Transfer{
				{From: "B", To: "A", Amount: 100},
				{From: "C", To: "A", Amount: 100},
			},
		},
		{
			name:     "two creditors two debtors largest first",
			balances: map[string]float64{"A": 50, "B": 30, "C": -40, "D": -40},
			want: []models.Transfer{
				{From: "C", To: "A", Amount: 40},
				{From: "D", To: "A", Amount: 10},
				{From: "D", To: "B", Amount: 30},
			},
		},
		{
			name:     "exact match advances both cursors",
			balances: map[string]float64{"A": 40, "B": 10, "C": -40, "D": -10},
			want: []models.Transfer{
				{From: "C", To: "A", Amount: 40},
				{From: "D", To: "B", Amount: 10},
			},
		},
		{
			name:     "float noise is rounded away",
			balances: map[string]float64{"A": 59.999999999, "B": -29.999999999, "C": -30.000000001},
			want: []models.Transfer{
				{From: "B", To: "A", Amount: 30},
				{From: "C", To: "A", Amount: 30},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.balances)

			if len(got) != len(tt.want) {
				t.Fatalf("transfers: got %v, want %v", got, tt.want)
			}
			for i, want := range tt.want {
				if got[i].From != want.From || got[i].To != want.To {
					t.Errorf("transfer %d = %s->%s, want %s->%s", i, got[i].From, got[i].To, want.From, want.To)
				}
				if math.Abs(got[i].Amount-want.Amount) > tolerance {
					t.Errorf("transfer %d amount = %v, want %v", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestSimplifyProperties(t *testing.T) {
	cases := []map[string]float64{
		{"A": 200, "B": -100, "C": -100},
		{"A": 50, "B": 30, "C": -40, "D": -40},
		{"A": 12.34, "B": -5.67, "C": -6.67},
		{"A": 1000, "B": 0.5, "C": -500.25, "D": -500.25},
		{"A": 33.33, "B": 33.33, "C": 33.34, "D": -100},
	}

	for _, balances := range cases {
		transfers := Simplify(balances)

		var debtors, creditors int
		for _, bal := range balances {
			if bal < -tolerance {
				debtors++
			} else if bal > tolerance {
				creditors++
			}
		}

		if limit := debtors + creditors - 1; len(transfers) > limit {
			t.Errorf("too many transfers for %v: got %d, limit %d", balances, len(transfers), limit)
		}

		for _, tr := range transfers {
			if tr.From == tr.To {
				t.Errorf("self transfer emitted for %v: %+v", balances, tr)
			}
			if tr.Amount <= tolerance {
				t.Errorf("non-positive transfer for %v: %+v", balances, tr)
			}
		}

		// Paying every transfer must settle everyone.
		for id, bal := range applyTransfers(balances, transfers) {
			if math.Abs(bal) > tolerance {
				t.Errorf("%s not settled after transfers for %v: residual %v", id, balances, bal)
			}
		}
	}
}
