package ledger

import "errors"

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrEmptySplit      = errors.New("expense must be split between at least one member")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)
