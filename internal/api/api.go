// Package api maps HTTP requests onto the signature record manager and
// serializes its results.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siglink-dev/siglink-gate/internal/auth"
	"github.com/siglink-dev/siglink-gate/internal/auth/store"
	"github.com/siglink-dev/siglink-gate/internal/ledger"
	"github.com/siglink-dev/siglink-gate/internal/qr"
)

// Service is the slice of the signature record manager the front end needs.
type Service interface {
	Observe(ctx context.Context) (*auth.Observation, error)
	Redeem(ctx context.Context, signature string) (*auth.Redemption, error)
	Consume(ctx context.Context, signature string) (*auth.Redemption, error)
	Stats(ctx context.Context) (map[string]any, error)
}

type Handler struct {
	Auth    Service
	BaseURL string
}

// Register wires every route onto the engine. Observation and redemption
// accept both GET and POST for compatibility with existing scanners.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Hello)
	r.GET("/ping", h.Ping)

	r.GET("/call-contract", h.CallContract)
	r.POST("/call-contract", h.CallContract)
	r.GET("/authenticate/:signature", h.Authenticate)
	r.POST("/authenticate/:signature", h.Authenticate)
	r.DELETE("/authenticate/:signature", h.Consume)
	r.GET("/log-transaction", h.LogTransaction)
	r.POST("/log-transaction", h.LogTransaction)
	r.GET("/qr/:signature", h.QR)
	r.GET("/stats", h.Stats)
}

func (h *Handler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Solana + Gin!")
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// CallContract observes the watched program and reports its account state
// plus the latest transaction. The response stays flat so existing callers
// keep parsing it.
func (h *Handler) CallContract(c *gin.Context) {
	obs, err := h.Auth.Observe(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if obs.Account == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":                       "account not found",
			"latest_transaction_signature": nil,
			"sender_wallet":                nil,
		})
		return
	}

	resp := gin.H{
		"lamports":   obs.Account.Lamports,
		"owner":      obs.Account.Owner,
		"executable": obs.Account.Executable,
		"rent_epoch": obs.Account.RentEpoch,
		"data":       obs.Account.Data,
	}
	if obs.LatestSignature != "" {
		resp["latest_transaction_signature"] = obs.LatestSignature
		resp["sender_wallet"] = obs.Sender.Pubkey
	} else {
		resp["latest_transaction_signature"] = nil
		resp["sender_wallet"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Authenticate(c *gin.Context) {
	red, err := h.Auth.Redeem(c.Request.Context(), c.Param("signature"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, red)
}

func (h *Handler) Consume(c *gin.Context) {
	red, err := h.Auth.Consume(c.Request.Context(), c.Param("signature"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, red)
}

// LogTransaction accepts an arbitrary JSON payload, logs it, and echoes a
// receipt. No record manager involvement.
func (h *Handler) LogTransaction(c *gin.Context) {
	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("received transaction log: %v", payload)
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// QR renders the redemption URL for a signature as a PNG image.
func (h *Handler) QR(c *gin.Context) {
	png, err := qr.RedemptionPNG(h.BaseURL, c.Param("signature"), 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Auth.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// writeError maps core error kinds onto HTTP status codes. Valid empty
// outcomes (no account, no history, unknown signature) never reach here;
// they are ordinary 200 responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrBadAddress),
		errors.Is(err, ledger.ErrBadSignature),
		errors.Is(err, store.ErrEmptySignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUnavailable),
		errors.Is(err, store.ErrUnavailable),
		errors.Is(err, ledger.ErrTxNotFound):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
