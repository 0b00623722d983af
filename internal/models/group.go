package models

// SelfMemberID is the sentinel member ID for the current user. The ledger
// store assigns it to at most one member per group; the balance math treats
// it like any other ID. Its only meaning is which account the UI frames as
// "you".
const SelfMemberID = "me"

// Member is a participant in a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format, or
	// SelfMemberID for the current user).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`
}

// Group is the unit of sharing: members plus the open expenses between them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Trip").
	Name string `json:"name"`

	// Currency is the single currency code for every expense in the group
	// (e.g., "USD"). Multi-currency groups are not supported.
	Currency string `json:"currency"`

	// Members is the member list in insertion order. Order is preserved
	// for display but carries no meaning in the balance math.
	Members []Member `json:"members"`

	// Expenses is the open expense list in insertion order. Settling up
	// clears it.
	Expenses []Expense `json:"expenses"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// Member returns the member with the given ID, if present.
func (g *Group) Member(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether a member with the given ID belongs to the group.
func (g *Group) HasMember(id string) bool {
	_, ok := g.Member(id)
	return ok
}

// Clone returns a deep copy of the group. Mutations in the ledger store
// operate on clones so that previously handed-out references stay frozen.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = make([]Member, len(g.Members))
	copy(c.Members, g.Members)
	c.Expenses = make([]Expense, len(g.Expenses))
	for i := range g.Expenses {
		c.Expenses[i] = g.Expenses[i].Clone()
	}
	return &c
}
