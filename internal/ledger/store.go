// Package ledger owns the authoritative collection of groups and exposes the
// mutation and query operations the bill-splitting feature is built on.
//
// Mutations are copy-on-write: each one clones the affected group, applies
// the delta, persists the full snapshot, and only then swaps the new state
// in. A reader holding a group from before a mutation keeps seeing a frozen,
// consistent view, and a failed persistence write leaves the in-memory state
// exactly as it was.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitpocket/splitpocket/internal/calculator"
	"github.com/splitpocket/splitpocket/internal/models"
	"github.com/splitpocket/splitpocket/internal/storage"
)

const (
	defaultSelfName = "You"
	defaultCurrency = "USD"
)

// Store holds the group collection and its persistence backend.
type Store struct {
	mu sync.RWMutex
	kv storage.KV

	selfName string
	currency string

	groups     []*models.Group
	selectedID string
}

// Option configures a Store.
type Option func(*Store)

// WithSelfName sets the display name that identifies the current user when
// creating groups (default "You"). Matching is case-insensitive.
func WithSelfName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.selfName = name
		}
	}
}

// WithCurrency sets the currency code assigned to groups created without an
// explicit one (default "USD").
func WithCurrency(code string) Option {
	return func(s *Store) {
		if code != "" {
			s.currency = code
		}
	}
}

// New creates a Store backed by the given KV and restores the persisted
// snapshot, if any.
func New(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:       kv,
		selfName: defaultSelfName,
		currency: defaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := kv.Get(ctx, snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	if ok {
		snap, err := decodeSnapshot(data)
		if err != nil {
			return nil, err
		}
		s.groups = snap.Groups
		s.selectedID = snap.SelectedGroupID
		if _, idx := s.findGroup(s.selectedID); idx < 0 {
			s.selectedID = ""
		}
		slog.Info("Ledger restored", "groups", len(s.groups))
	}

	return s, nil
}

// commit persists the candidate state and, only on success, swaps it in.
// The caller must hold the write lock.
func (s *Store) commit(ctx context.Context, groups []*models.Group, selectedID string) error {
	data, err := encodeSnapshot(groups, selectedID)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, snapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	s.groups = groups
	s.selectedID = selectedID
	return nil
}

// findGroup returns the group with the given ID and its index, or -1.
// The caller must hold at least the read lock.
func (s *Store) findGroup(id string) (*models.Group, int) {
	for i, g := range s.groups {
		if g.ID == id {
			return g, i
		}
	}
	return nil, -1
}

// withGroup builds a new group slice with the clone substituted at idx.
func (s *Store) withGroup(idx int, g *models.Group) []*models.Group {
	groups := make([]*models.Group, len(s.groups))
	copy(groups, s.groups)
	groups[idx] = g
	return groups
}

// CreateGroup creates a group with the given member names. Unique IDs are
// synthesized for the group and every member. If no supplied name matches
// the configured self name (case-insensitively), the current user is
// injected as an additional first member.
func (s *Store) CreateGroup(ctx context.Context, name, currency string, memberNames []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name: %w", ErrEmptyName)
	}
	if currency == "" {
		currency = s.currency
	}

	var members []models.Member
	hasSelf := false
	for _, n := range memberNames {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		id := uuid.New().String()
		if !hasSelf && strings.EqualFold(n, s.selfName) {
			id = models.SelfMemberID
			hasSelf = true
		}
		members = append(members, models.Member{ID: id, Name: n})
	}
	if !hasSelf {
		members = append([]models.Member{{ID: models.SelfMemberID, Name: s.selfName}}, members...)
	}

	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Currency:  currency,
		Members:   members,
		CreatedAt: time.Now().Unix(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*models.Group, 0, len(s.groups)+1)
	groups = append(groups, s.groups...)
	groups = append(groups, group)

	if err := s.commit(ctx, groups, s.selectedID); err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members", len(members))
	return group, nil
}

// SelectGroup marks the group as the current one for the UI and returns it.
func (s *Store) SelectGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}

	if err := s.commit(ctx, s.groups, groupID); err != nil {
		return nil, err
	}
	return group, nil
}

// Selected returns the currently selected group, if any.
func (s *Store) Selected() (*models.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, idx := s.findGroup(s.selectedID)
	if idx < 0 {
		return nil, false
	}
	return group, true
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}
	return group, nil
}

// ListGroups returns all groups in creation order.
func (s *Store) ListGroups() []*models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*models.Group, len(s.groups))
	copy(groups, s.groups)
	return groups
}

// AddExpense appends an expense to the group. The amount must be positive,
// the split must name at least one current member (duplicates are dropped),
// and the payer must be a current member. The payer is not required to be in
// the split.
func (s *Store) AddExpense(ctx context.Context, groupID, description string, amount float64, paidBy string, splitBetween []string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	seen := make(map[string]bool, len(splitBetween))
	split := make([]string, 0, len(splitBetween))
	for _, id := range splitBetween {
		if seen[id] {
			continue
		}
		seen[id] = true
		split = append(split, id)
	}
	if len(split) == 0 {
		return nil, ErrEmptySplit
	}

	if !group.HasMember(paidBy) {
		return nil, fmt.Errorf("payer %s: %w", paidBy, ErrMemberNotFound)
	}
	for _, id := range split {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("participant %s: %w", id, ErrMemberNotFound)
		}
	}

	expense := models.Expense{
		ID:           uuid.New().String(),
		Description:  description,
		Amount:       amount,
		PaidBy:       paidBy,
		SplitBetween: split,
		CreatedAt:    time.Now().Unix(),
	}

	updated := group.Clone()
	updated.Expenses = append(updated.Expenses, expense)

	if err := s.commit(ctx, s.withGroup(idx, updated), s.selectedID); err != nil {
		return nil, err
	}

	slog.Info("Expense added",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", amount,
		"participants", len(split),
	)
	return &expense, nil
}

// DeleteExpense removes a single expense from the group.
func (s *Store) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}

	updated := group.Clone()
	found := false
	expenses := updated.Expenses[:0]
	for _, e := range updated.Expenses {
		if e.ID == expenseID {
			found = true
			continue
		}
		expenses = append(expenses, e)
	}
	if !found {
		return fmt.Errorf("expense %s: %w", expenseID, ErrExpenseNotFound)
	}
	updated.Expenses = expenses

	if err := s.commit(ctx, s.withGroup(idx, updated), s.selectedID); err != nil {
		return err
	}

	slog.Info("Expense deleted", "group_id", groupID, "expense_id", expenseID)
	return nil
}

// AddMember appends a member with a fresh ID to the group.
func (s *Store) AddMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("member name: %w", ErrEmptyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}

	member := models.Member{ID: uuid.New().String(), Name: name}
	updated := group.Clone()
	updated.Members = append(updated.Members, member)

	if err := s.commit(ctx, s.withGroup(idx, updated), s.selectedID); err != nil {
		return nil, err
	}

	slog.Info("Member added", "group_id", groupID, "member_id", member.ID, "name", name)
	return &member, nil
}

// RemoveMember removes the member from the group's roster. Existing expenses
// that reference the member as payer or participant are left untouched, so
// the member can keep appearing in balances with a nonzero amount until
// those expenses are deleted or settled.
func (s *Store) RemoveMember(ctx context.Context, groupID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}
	if !group.HasMember(memberID) {
		return fmt.Errorf("member %s: %w", memberID, ErrMemberNotFound)
	}

	updated := group.Clone()
	members := updated.Members[:0]
	for _, m := range updated.Members {
		if m.ID == memberID {
			continue
		}
		members = append(members, m)
	}
	updated.Members = members

	if err := s.commit(ctx, s.withGroup(idx, updated), s.selectedID); err != nil {
		return err
	}

	slog.Info("Member removed", "group_id", groupID, "member_id", memberID)
	return nil
}

// SettleUp clears the group's entire expense list, representing a confirmed
// real-world payment round. There is no per-debt settlement and no archive
// of what was cleared; afterwards every balance in the group is zero.
// Calling it on an already settled group is a no-op.
func (s *Store) SettleUp(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}

	cleared := len(group.Expenses)
	updated := group.Clone()
	updated.Expenses = nil

	if err := s.commit(ctx, s.withGroup(idx, updated), s.selectedID); err != nil {
		return err
	}

	slog.Info("Group settled", "group_id", groupID, "expenses_cleared", cleared)
	return nil
}

// DeleteGroup removes the group. If it was the selected group, the selection
// becomes empty.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx := s.findGroup(groupID)
	if idx < 0 {
		return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}

	groups := make([]*models.Group, 0, len(s.groups)-1)
	groups = append(groups, s.groups[:idx]...)
	groups = append(groups, s.groups[idx+1:]...)

	selectedID := s.selectedID
	if selectedID == groupID {
		selectedID = ""
	}

	if err := s.commit(ctx, groups, selectedID); err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// GetBalances computes each member's net balance for the group. Positive
// means the member is owed money, negative means the member owes.
func (s *Store) GetBalances(groupID string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}
	return calculator.Balances(group.Members, group.Expenses), nil
}

// GetDebts computes the simplified transfer list that would settle the
// group's current balances.
func (s *Store) GetDebts(groupID string) ([]models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, idx := s.findGroup(groupID)
	if idx < 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
	}
	return calculator.Simplify(calculator.Balances(group.Members, group.Expenses)), nil
}
