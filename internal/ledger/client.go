package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// DefaultEndpoint is the ledger RPC endpoint used when none is configured.
const DefaultEndpoint = "https://api.devnet.solana.com"

// Client is a Reader backed by a Solana JSON-RPC endpoint.
type Client struct {
	rpc *rpc.Client
}

// NewClient connects a ledger reader to the given RPC endpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{rpc: rpc.New(endpoint)}
}

func (c *Client) AccountInfo(ctx context.Context, address string) (*Account, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadAddress, address)
	}

	out, err := c.rpc.GetAccountInfo(ctx, pub)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get account info: %v", ErrUnavailable, err)
	}
	acc := out.Value
	if acc == nil {
		return nil, ErrNoAccount
	}

	var data []byte
	if acc.Data != nil {
		data = acc.Data.GetBinary()
	}
	return &Account{
		Lamports:   uint64(acc.Lamports),
		Owner:      acc.Owner.String(),
		Executable: acc.Executable,
		RentEpoch:  acc.RentEpoch.Uint64(),
		Data:       data,
	}, nil
}

func (c *Client) RecentSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadAddress, address)
	}
	if limit <= 0 {
		limit = 1
	}

	sigs, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, pub, &rpc.GetSignaturesForAddressOpts{
		Limit: &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get signatures: %v", ErrUnavailable, err)
	}

	out := make([]string, 0, len(sigs))
	for _, s := range sigs {
		out = append(out, s.Signature.String())
	}
	return out, nil
}

func (c *Client) TransactionDetail(ctx context.Context, signature string) (*Transaction, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadSignature, signature)
	}

	maxVersion := uint64(0)
	res, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, signature)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get transaction: %v", ErrUnavailable, err)
	}
	if res == nil || res.Transaction == nil {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, signature)
	}

	tx, err := res.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", signature, err)
	}

	keys := make([]string, 0, len(tx.Message.AccountKeys))
	for _, k := range tx.Message.AccountKeys {
		keys = append(keys, k.String())
	}
	return &Transaction{Signature: signature, AccountKeys: keys}, nil
}
