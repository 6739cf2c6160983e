// Package ledger reads account state and transaction history from the public
// ledger the gate watches.
package ledger

import (
	"context"
	"errors"
)

var (
	// ErrNoAccount is returned when the watched address has no on-ledger account.
	ErrNoAccount = errors.New("account not found")
	// ErrTxNotFound is returned when a transaction signature is unknown to the ledger.
	ErrTxNotFound = errors.New("transaction not found")
	// ErrBadAddress is returned when an account address fails format validation.
	ErrBadAddress = errors.New("malformed address")
	// ErrBadSignature is returned when a transaction signature fails format validation.
	ErrBadSignature = errors.New("malformed signature")
	// ErrUnavailable is returned when the ledger endpoint cannot be reached.
	ErrUnavailable = errors.New("ledger unavailable")
)

// Account is the current on-ledger state of an address.
type Account struct {
	Lamports   uint64
	Owner      string
	Executable bool
	RentEpoch  uint64
	Data       []byte
}

// Transaction holds the subset of transaction detail the gate needs.
// AccountKeys is ordered as reported by the ledger; index 0 is the fee payer.
type Transaction struct {
	Signature   string
	AccountKeys []string
}

// Reader is the contract the signature record manager requires from the ledger.
// Both the RPC client and the test doubles implement it.
type Reader interface {
	// AccountInfo returns the current account state for an address.
	// Returns ErrNoAccount when the address has no on-ledger account.
	AccountInfo(ctx context.Context, address string) (*Account, error)
	// RecentSignatures returns up to limit signatures involving the address,
	// newest first.
	RecentSignatures(ctx context.Context, address string, limit int) ([]string, error)
	// TransactionDetail returns the full detail of a confirmed transaction.
	// Returns ErrTxNotFound when the signature is unknown at query time.
	TransactionDetail(ctx context.Context, signature string) (*Transaction, error)
}
