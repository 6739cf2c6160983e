package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siglink-dev/siglink-gate/internal/api"
	"github.com/siglink-dev/siglink-gate/internal/auth"
	"github.com/siglink-dev/siglink-gate/internal/auth/store"
	"github.com/siglink-dev/siglink-gate/internal/config"
	"github.com/siglink-dev/siglink-gate/internal/ledger"
	"github.com/siglink-dev/siglink-gate/internal/vault"
)

func main() {
	fmt.Println("Starting siglink gate daemon...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Build the record store
	st, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	fmt.Printf("Record store ready (driver: %s).\n", driverName(cfg))

	// 2. Optionally seed it from an exported file-store directory
	if cfg.ImportDir != "" {
		src, err := store.NewFile(store.FileConfig{Dir: cfg.ImportDir})
		if err != nil {
			log.Fatalf("Failed to open import directory: %v", err)
		}
		if err := store.Migrate(context.Background(), src, st); err != nil {
			log.Fatalf("Failed to import records: %v", err)
		}
		_ = src.Close(context.Background())
		fmt.Printf("Imported records from %s.\n", cfg.ImportDir)
	}

	// 3. Wire the core to the ledger
	reader := ledger.NewClient(cfg.RPCEndpoint)
	mgr := auth.NewManager(reader, st, cfg.ProgramID)
	fmt.Printf("Watching program %s via %s.\n", mgr.Program(), cfg.RPCEndpoint)

	// 4. HTTP front end
	h := &api.Handler{Auth: mgr, BaseURL: cfg.PublicBaseURL}
	r := gin.Default()
	r.Use(api.RequestID())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h.Register(r)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	// 5. TLS with an ephemeral self-signed certificate unless disabled
	useTLS := !cfg.DisableTLS
	if useTLS {
		fmt.Println("Generating self-signed certificate for internal TLS...")
		cert, err := vault.GenerateSelfSignedCert()
		if err != nil {
			log.Fatalf("Failed to generate TLS certificate: %v", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		fmt.Println("TLS encryption enabled.")
	} else {
		fmt.Println("TLS encryption disabled (SIGLINK_DISABLE_TLS=true).")
	}

	go func() {
		fmt.Printf("siglink gate listening on :%s\n", cfg.HTTPPort)
		var err error
		if useTLS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// 6. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutdown signal received. Draining connections...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: shutdown did not complete cleanly: %v", err)
	}
	if err := st.Close(ctx); err != nil {
		log.Printf("Warning: record store close failed: %v", err)
	}
	fmt.Println("Exiting.")
}

func buildStore(cfg *config.Config) (store.Store, error) {
	sc := store.Config{Driver: cfg.StoreDriver}
	switch cfg.StoreDriver {
	case store.DriverFile:
		var key []byte
		if cfg.VaultKeyHex != "" {
			var err error
			key, err = vault.KeyFromHex(cfg.VaultKeyHex)
			if err != nil {
				return nil, err
			}
		}
		sc.File = &store.FileConfig{Dir: cfg.DataDir, Key: key}
	case store.DriverRedis:
		sc.Redis = &store.RedisConfig{
			Addr:   cfg.RedisAddr,
			DB:     cfg.RedisDB,
			Prefix: cfg.RedisPrefix,
		}
	case store.DriverSQLite:
		sc.SQLite = &store.SQLiteConfig{DSN: cfg.SQLiteDSN}
	}
	return store.New(sc)
}

func driverName(cfg *config.Config) string {
	if cfg.StoreDriver == "" {
		return store.DriverMemory
	}
	return cfg.StoreDriver
}
