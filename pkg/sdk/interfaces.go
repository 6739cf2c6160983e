package sdk

import "context"

// --- Functional Interfaces (Interface Segregation) ---

// ContractCaller triggers an observation of the watched program.
type ContractCaller interface {
	CallContract(ctx context.Context) (map[string]any, error)
}

// Redeemer presents signatures for authentication.
type Redeemer interface {
	Authenticate(ctx context.Context, signature string) (Redemption, error)
	Consume(ctx context.Context, signature string) (Redemption, error)
}

// TransactionLogger forwards transaction payloads to the gate's log.
type TransactionLogger interface {
	LogTransaction(ctx context.Context, payload any) error
}

// QRFetcher retrieves the QR image for a signature's redemption URL.
type QRFetcher interface {
	QR(ctx context.Context, signature string) ([]byte, error)
}

// --- Composite Interface ---

// GateClient is the full client contract for a siglink gate daemon.
type GateClient interface {
	ContractCaller
	Redeemer
	TransactionLogger
	QRFetcher

	Stats(ctx context.Context) (map[string]any, error)
	Ping(ctx context.Context) error
}

// Redemption mirrors the gate's authentication response. The SDK keeps its
// own copy of the wire shape so client builds never depend on server
// internals.
type Redemption struct {
	Authenticated bool    `json:"authenticated"`
	Wallet        *Wallet `json:"wallet,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// Wallet is the sender descriptor attached to an authenticated redemption.
type Wallet struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Source   string `json:"source"`
	Writable bool   `json:"writable"`
}
