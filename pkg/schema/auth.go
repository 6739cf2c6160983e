// Package schema defines universal data structures shared by the gate daemon,
// the store drivers and the client SDK.
package schema

// SenderWallet describes the account the ledger reported as the fee payer of
// the observed transaction. The shape matches what the ledger's parsed
// transaction encoding emits for an account key entry.
type SenderWallet struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Source   string `json:"source"`
	Writable bool   `json:"writable"`
}

// AuthRecord is the persisted mapping from a transaction signature to the
// wallet considered authenticated by it. A record only ever exists in the
// authenticated state; absence of a record is the unauthenticated state.
type AuthRecord struct {
	Signature     string       `json:"signature"`
	SenderWallet  SenderWallet `json:"sender_wallet"`
	Authenticated bool         `json:"authenticated"`
}
