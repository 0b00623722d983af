package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/splitpocket/splitpocket/internal/models"
)

const (
	// snapshotKey is the well-known key the whole group collection is
	// stored under. There is no partial or incremental persistence.
	snapshotKey = "ledger/groups"

	// snapshotVersion is bumped whenever the serialized shape changes.
	snapshotVersion = 1
)

// snapshot is the serialized form of the ledger state: every group plus the
// currently selected group ID, written as one JSON blob after each mutation.
type snapshot struct {
	Version         int             `json:"version"`
	Groups          []*models.Group `json:"groups"`
	SelectedGroupID string          `json:"selected_group_id,omitempty"`
}

func encodeSnapshot(groups []*models.Group, selectedGroupID string) ([]byte, error) {
	data, err := json.Marshal(snapshot{
		Version:         snapshotVersion,
		Groups:          groups,
		SelectedGroupID: selectedGroupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*snapshot, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version < 1 || snap.Version > snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	return &snap, nil
}
