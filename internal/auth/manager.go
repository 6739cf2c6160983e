// Package auth implements the signature record lifecycle: observing the
// latest transaction of a watched program, recording its sender as an
// authentication record, and redeeming signatures against those records.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/siglink-dev/siglink-gate/internal/auth/store"
	"github.com/siglink-dev/siglink-gate/internal/ledger"
	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

// DefaultProgram is the program address watched when none is configured.
const DefaultProgram = "JLoZ8cWwv6hPYR1dshN61scNHwF9DAA257YtVjZfB3E"

// Manager owns the decision of when an auth record is created. It is
// stateless between calls; all durable state lives in the record store.
type Manager struct {
	ledger  ledger.Reader
	store   store.Store
	program string
}

// NewManager wires the manager to its collaborators.
func NewManager(r ledger.Reader, s store.Store, program string) *Manager {
	if program == "" {
		program = DefaultProgram
	}
	return &Manager{ledger: r, store: s, program: program}
}

// Program returns the watched program address.
func (m *Manager) Program() string { return m.program }

// AccountData is the observed on-ledger state of the watched program.
type AccountData struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rent_epoch"`
	Data       string `json:"data"`
}

// Observation is the result of a contract check. Account is nil when the
// watched program has no on-ledger account; LatestSignature is empty when the
// account has no transaction history. Sender is set iff LatestSignature is.
type Observation struct {
	Account         *AccountData
	LatestSignature string
	Sender          *schema.SenderWallet
}

// Redemption is the outcome of presenting a signature for authentication.
// "Not found" is a valid terminal outcome, not an error.
type Redemption struct {
	Authenticated bool                 `json:"authenticated"`
	Wallet        *schema.SenderWallet `json:"wallet,omitempty"`
	Message       string               `json:"message,omitempty"`
}

// Observe fetches the watched program's account state and its most recent
// transaction, records the transaction's fee payer as the authenticated
// sender, and returns the observation.
//
// A missing account or empty history is a valid empty observation, not an
// error; in both cases no record is written.
func (m *Manager) Observe(ctx context.Context) (*Observation, error) {
	acc, err := m.ledger.AccountInfo(ctx, m.program)
	if errors.Is(err, ledger.ErrNoAccount) {
		return &Observation{}, nil
	}
	if err != nil {
		return nil, err
	}

	obs := &Observation{
		Account: &AccountData{
			Lamports:   acc.Lamports,
			Owner:      acc.Owner,
			Executable: acc.Executable,
			RentEpoch:  acc.RentEpoch,
			Data:       decodeText(acc.Data),
		},
	}

	sigs, err := m.ledger.RecentSignatures(ctx, m.program, 1)
	if err != nil {
		return nil, err
	}
	if len(sigs) == 0 {
		return obs, nil
	}
	latest := sigs[0]

	tx, err := m.ledger.TransactionDetail(ctx, latest)
	if err != nil {
		return nil, err
	}
	if len(tx.AccountKeys) == 0 {
		return nil, fmt.Errorf("transaction %s has no account keys", latest)
	}

	// Index 0 is the fee payer by ledger convention. Positional, not
	// role-based: the "sender" here is whoever paid for the transaction.
	sender := schema.SenderWallet{
		Pubkey:   tx.AccountKeys[0],
		Signer:   true,
		Source:   "transaction",
		Writable: true,
	}
	if err := m.Create(ctx, latest, sender); err != nil {
		return nil, err
	}

	obs.LatestSignature = latest
	obs.Sender = &sender
	return obs, nil
}

// Create upserts the auth record for a signature. Creation is idempotent:
// the same signature always maps to the same transaction detail, so a repeat
// write leaves the store in an identical state.
func (m *Manager) Create(ctx context.Context, signature string, sender schema.SenderWallet) error {
	if signature == "" {
		return store.ErrEmptySignature
	}
	rec := schema.AuthRecord{
		Signature:     signature,
		SenderWallet:  sender,
		Authenticated: true,
	}
	if err := m.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("store signature %s: %w", signature, err)
	}
	return nil
}

// Redeem looks up a signature and reports whether it authenticates a wallet.
// Redemption is a pure read; records are durable credentials and survive any
// number of redemptions.
func (m *Manager) Redeem(ctx context.Context, signature string) (*Redemption, error) {
	rec, err := m.store.Get(ctx, signature)
	if errors.Is(err, store.ErrRecordNotFound) {
		return &Redemption{Authenticated: false, Message: "Signature not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup signature %s: %w", signature, err)
	}

	wallet := rec.SenderWallet
	return &Redemption{Authenticated: true, Wallet: &wallet}, nil
}

// Consume is the one-time-use variant of Redeem: a successful redemption
// deletes the record, so the same signature cannot authenticate twice.
func (m *Manager) Consume(ctx context.Context, signature string) (*Redemption, error) {
	red, err := m.Redeem(ctx, signature)
	if err != nil || !red.Authenticated {
		return red, err
	}
	if err := m.store.Delete(ctx, signature); err != nil {
		return nil, fmt.Errorf("consume signature %s: %w", signature, err)
	}
	return red, nil
}

// Stats reports the watched program and the backing store's own counters.
func (m *Manager) Stats(ctx context.Context) (map[string]any, error) {
	stats, err := m.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}
	stats["program"] = m.program
	return stats, nil
}

// decodeText renders raw account data as text, dropping invalid bytes.
// Account data is arbitrary; this is best-effort display only.
func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
