package ledger

import "errors"

var (
	// ErrNotFound reports that an operation targeted a card id that is not
	// in the store. It is never retried internally.
	ErrNotFound = errors.New("ledger: card not found")

	// ErrNegativeAmount reports a balance write that would take a card
	// below zero. Input validation belongs to the caller; this is the one
	// check the ledger enforces itself to protect its invariant.
	ErrNegativeAmount = errors.New("ledger: amount must not be negative")
)
