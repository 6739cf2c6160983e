// Package sdk provides the client-side library for talking to a siglink gate
// daemon over HTTP(S).
package sdk

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is a remote client for the siglink gate. It implements GateClient.
type Client struct {
	base string
	http *http.Client
}

// Connect builds a client for the given address and verifies the daemon is
// reachable. The daemon serves a self-signed certificate by default, so
// certificate verification is skipped unless SIGLINK_VERIFY_TLS is "true".
func Connect(addr string) (*Client, error) {
	base, err := normalize(addr)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{}
	if os.Getenv("SIGLINK_VERIFY_TLS") != "true" {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second, Transport: transport},
	}
	if err := c.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("gate at %s not reachable: %w", base, err)
	}
	return c, nil
}

func normalize(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("gate address required")
	}
	if !strings.Contains(addr, "://") {
		addr = "https://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid gate address %q: %w", addr, err)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// do performs one request with up to 3 attempts and exponential backoff,
// decoding a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * 200 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// The gate reports failures as {"error": ...}
			var e struct {
				Error string `json:"error"`
			}
			if json.Unmarshal(data, &e) == nil && e.Error != "" {
				return fmt.Errorf("gate error (%d): %s", resp.StatusCode, e.Error)
			}
			return fmt.Errorf("gate error (%d)", resp.StatusCode)
		}

		if out == nil {
			return nil
		}
		if raw, ok := out.(*[]byte); ok {
			*raw = data
			return nil
		}
		return json.Unmarshal(data, out)
	}
	return fmt.Errorf("failed after 3 attempts. last error: %v", lastErr)
}

func (c *Client) CallContract(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/call-contract", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Authenticate(ctx context.Context, signature string) (Redemption, error) {
	var out Redemption
	err := c.do(ctx, http.MethodGet, "/authenticate/"+url.PathEscape(signature), nil, &out)
	return out, err
}

func (c *Client) Consume(ctx context.Context, signature string) (Redemption, error) {
	var out Redemption
	err := c.do(ctx, http.MethodDelete, "/authenticate/"+url.PathEscape(signature), nil, &out)
	return out, err
}

func (c *Client) LogTransaction(ctx context.Context, payload any) error {
	return c.do(ctx, http.MethodPost, "/log-transaction", payload, nil)
}

func (c *Client) QR(ctx context.Context, signature string) ([]byte, error) {
	var raw []byte
	err := c.do(ctx, http.MethodGet, "/qr/"+url.PathEscape(signature), nil, &raw)
	return raw, err
}

func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

// --- Generics Support ---

// Field extracts a typed value from a dynamic gate response. JSON numbers
// arrive as float64, so numeric fields are re-marshaled into the target type.
func Field[T any](resp map[string]any, key string) (T, error) {
	var target T
	val, ok := resp[key]
	if !ok || val == nil {
		return target, fmt.Errorf("field %q missing", key)
	}

	if v, ok := val.(T); ok {
		return v, nil
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return target, err
	}
	err = json.Unmarshal(bytes, &target)
	return target, err
}
