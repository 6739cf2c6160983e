package sdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/siglink-dev/siglink-gate/pkg/sdk"
)

// newTestGate runs a minimal in-process gate for SDK tests.
func newTestGate(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "pong"})
	})
	mux.HandleFunc("/call-contract", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"lamports":                     100,
			"latest_transaction_signature": "SIG1",
			"sender_wallet":                "WALLET_A",
		})
	})
	mux.HandleFunc("/authenticate/", func(w http.ResponseWriter, r *http.Request) {
		sig := strings.TrimPrefix(r.URL.Path, "/authenticate/")
		if sig == "SIG1" {
			json.NewEncoder(w).Encode(sdk.Redemption{
				Authenticated: true,
				Wallet:        &sdk.Wallet{Pubkey: "WALLET_A", Signer: true},
			})
			return
		}
		json.NewEncoder(w).Encode(sdk.Redemption{Authenticated: false, Message: "Signature not found"})
	})
	mux.HandleFunc("/log-transaction", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "received"})
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"type": "memory", "total": 1})
	})
	mux.HandleFunc("/qr/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestConnectAndPing(t *testing.T) {
	srv := newTestGate(t)

	c, err := sdk.Connect(srv.URL)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestConnectRejectsUnreachableGate(t *testing.T) {
	if _, err := sdk.Connect("http://127.0.0.1:1"); err == nil {
		t.Fatal("expected connection failure")
	}
	if _, err := sdk.Connect(""); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestCallContract(t *testing.T) {
	srv := newTestGate(t)
	c, err := sdk.Connect(srv.URL)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	resp, err := c.CallContract(context.Background())
	if err != nil {
		t.Fatalf("CallContract failed: %v", err)
	}
	if resp["sender_wallet"] != "WALLET_A" {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestAuthenticate(t *testing.T) {
	srv := newTestGate(t)
	c, err := sdk.Connect(srv.URL)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	red, err := c.Authenticate(context.Background(), "SIG1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !red.Authenticated || red.Wallet == nil || red.Wallet.Pubkey != "WALLET_A" {
		t.Errorf("unexpected redemption: %+v", red)
	}

	red, err = c.Authenticate(context.Background(), "MISSING")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if red.Authenticated || red.Message != "Signature not found" {
		t.Errorf("unexpected redemption: %+v", red)
	}
}

func TestLogTransactionAndQR(t *testing.T) {
	srv := newTestGate(t)
	c, err := sdk.Connect(srv.URL)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := c.LogTransaction(context.Background(), map[string]any{"slot": 42}); err != nil {
		t.Errorf("LogTransaction failed: %v", err)
	}

	png, err := c.QR(context.Background(), "SIG1")
	if err != nil {
		t.Fatalf("QR failed: %v", err)
	}
	if len(png) == 0 || png[1] != 'P' {
		t.Errorf("unexpected QR payload: %v", png)
	}
}

func TestStats(t *testing.T) {
	srv := newTestGate(t)
	c, err := sdk.Connect(srv.URL)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	total, err := sdk.Field[int](stats, "total")
	if err != nil || total != 1 {
		t.Errorf("Expected 1 record, got %v (%v)", total, err)
	}
}

func TestFieldExtraction(t *testing.T) {
	resp := map[string]any{
		"lamports":      float64(100), // JSON numbers arrive as float64
		"sender_wallet": "WALLET_A",
	}

	lamports, err := sdk.Field[uint64](resp, "lamports")
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	if lamports != 100 {
		t.Errorf("Expected 100, got %d", lamports)
	}

	wallet, err := sdk.Field[string](resp, "sender_wallet")
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	if wallet != "WALLET_A" {
		t.Errorf("Expected WALLET_A, got %s", wallet)
	}

	if _, err := sdk.Field[string](resp, "missing"); err == nil {
		t.Error("Expected error for missing field")
	}
}
