package ledger

import (
	"context"
	"errors"
	"testing"
)

// Address and signature validation happens before any network call, so these
// run against a client pointed at an unreachable endpoint.

func TestAccountInfoRejectsMalformedAddress(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.AccountInfo(context.Background(), "not-a-base58-address!")
	if !errors.Is(err, ErrBadAddress) {
		t.Fatalf("expected ErrBadAddress, got %v", err)
	}
}

func TestRecentSignaturesRejectsMalformedAddress(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.RecentSignatures(context.Background(), "", 1)
	if !errors.Is(err, ErrBadAddress) {
		t.Fatalf("expected ErrBadAddress, got %v", err)
	}
}

func TestTransactionDetailRejectsMalformedSignature(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.TransactionDetail(context.Background(), "???")
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	c := NewClient("")
	if c.rpc == nil {
		t.Fatal("expected rpc client to be initialized")
	}
}
