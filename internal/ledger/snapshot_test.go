package ledger

import (
	"errors"
	"testing"

	"github.com/splitpocket/splitpocket/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	groups := []*models.Group{
		{
			ID:       "g1",
			Name:     "Trip",
			Currency: "USD",
			Members: []models.Member{
				{ID: models.SelfMemberID, Name: "You"},
				{ID: "m1", Name: "Alice"},
			},
			Expenses: []models.Expense{
				{ID: "e1", Description: "Hotel", Amount: 300, PaidBy: "m1", SplitBetween: []string{"m1", models.SelfMemberID}, CreatedAt: 1700000000},
			},
			CreatedAt: 1700000000,
		},
	}

	data, err := encodeSnapshot(groups, "g1")
	if err != nil {
		t.Fatalf("encodeSnapshot failed: %v", err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		t.Fatalf("decodeSnapshot failed: %v", err)
	}

	if snap.Version != snapshotVersion {
		t.Errorf("version = %d, want %d", snap.Version, snapshotVersion)
	}
	if snap.SelectedGroupID != "g1" {
		t.Errorf("selected = %q, want g1", snap.SelectedGroupID)
	}
	if len(snap.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(snap.Groups))
	}
	got := snap.Groups[0]
	if got.Name != "Trip" || len(got.Members) != 2 || len(got.Expenses) != 1 {
		t.Errorf("group shape mismatch: %+v", got)
	}
	if got.Expenses[0].SplitBetween[1] != models.SelfMemberID {
		t.Errorf("split mismatch: %v", got.Expenses[0].SplitBetween)
	}
}

func TestDecodeSnapshotRejectsUnknownVersion(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "future version", data: `{"version":99,"groups":[]}`},
		{name: "missing version", data: `{"groups":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeSnapshot([]byte(tt.data))
			if !errors.Is(err, ErrSnapshotVersion) {
				t.Errorf("expected ErrSnapshotVersion, got %v", err)
			}
		})
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := decodeSnapshot([]byte("not json")); err == nil {
		t.Error("expected error for malformed snapshot")
	}
}
