// Package config resolves daemon configuration from the environment, an
// optional .env file, and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every knob the daemon reads at startup.
type Config struct {
	HTTPPort      string `yaml:"http_port"`
	PublicBaseURL string `yaml:"public_base_url"`
	RPCEndpoint   string `yaml:"rpc_endpoint"`
	ProgramID     string `yaml:"program_id"`
	DisableTLS    bool   `yaml:"disable_tls"`

	StoreDriver string `yaml:"store_driver"`
	DataDir     string `yaml:"data_dir"`
	SQLiteDSN   string `yaml:"sqlite_dsn"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisDB     int    `yaml:"redis_db"`
	RedisPrefix string `yaml:"redis_prefix"`

	// VaultKeyHex seals file-store records at rest when set (64 hex chars).
	VaultKeyHex string `yaml:"vault_key"`
	// ImportDir seeds the active store from a file-store directory at boot.
	ImportDir string `yaml:"import_dir"`
}

func defaults() Config {
	return Config{
		HTTPPort:      "5000",
		PublicBaseURL: "http://127.0.0.1:5000",
		RPCEndpoint:   "https://api.devnet.solana.com",
		ProgramID:     "JLoZ8cWwv6hPYR1dshN61scNHwF9DAA257YtVjZfB3E",
		StoreDriver:   "memory",
		DataDir:       "./data",
	}
}

// Load resolves the configuration. Precedence, lowest to highest: built-in
// defaults, the YAML file named by SIGLINK_CONFIG, then SIGLINK_* env vars.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	// .env is optional; absence just means the process environment is used.
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("SIGLINK_CONFIG"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	envString(&cfg.HTTPPort, "SIGLINK_HTTP_PORT")
	envString(&cfg.PublicBaseURL, "SIGLINK_BASE_URL")
	envString(&cfg.RPCEndpoint, "SIGLINK_RPC_ENDPOINT")
	envString(&cfg.ProgramID, "SIGLINK_PROGRAM_ID")
	envString(&cfg.StoreDriver, "SIGLINK_STORE_DRIVER")
	envString(&cfg.DataDir, "SIGLINK_DATA_DIR")
	envString(&cfg.SQLiteDSN, "SIGLINK_SQLITE_DSN")
	envString(&cfg.RedisAddr, "SIGLINK_REDIS_ADDR")
	envString(&cfg.RedisPrefix, "SIGLINK_REDIS_PREFIX")
	envString(&cfg.VaultKeyHex, "SIGLINK_VAULT_KEY")
	envString(&cfg.ImportDir, "SIGLINK_IMPORT_DIR")

	if v := os.Getenv("SIGLINK_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SIGLINK_REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = db
	}
	if os.Getenv("SIGLINK_DISABLE_TLS") == "true" {
		cfg.DisableTLS = true
	}

	return &cfg, nil
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
