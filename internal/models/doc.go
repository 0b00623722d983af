// Package models defines the core domain models for the group-expense ledger.
//
// # Persisted Models
//
//   - Group: a set of members who share expenses in a single currency
//   - Member: a participant in a group
//   - Expense: a single payment event, split among a subset of members
//
// These are plain structs with JSON tags; the ledger store serializes the
// whole group collection as one versioned snapshot blob.
//
// # Derived Models
//
//   - Transfer: a directed settling payment, output of the debt simplifier
//
// Balances and transfers are computed fresh from members and expenses on
// every request and are never persisted, so they cannot drift out of sync
// with the expense list.
//
// # Design Principles
//
//  1. Copy-on-write: the ledger store never mutates a model it has handed
//     to a caller; mutations build fresh structs (see the Clone methods)
//  2. Avoid circular references: relationships use ID strings, not pointers
//  3. One distinguished member ID (SelfMemberID) represents the current
//     user; it is a sentinel value only and gets no special treatment in
//     the balance math
package models
