// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

// StoreBackend selects where the API key is persisted.
type StoreBackend string

const (
	StoreSQLite  StoreBackend = "sqlite"
	StoreKeyring StoreBackend = "keyring"
	StoreMemory  StoreBackend = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	SecretKey      []byte // 32-byte AES-256 key; nil when KEYPANEL_SECRET_KEY is unset.
	Store          StoreBackend
	AutoCloseDelay time.Duration
	GeminiModel    string
	SessionIdle    time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional: KEYPANEL_LISTEN_ADDR (127.0.0.1:8080),
// KEYPANEL_DB_PATH (keypanel.db), KEYPANEL_SECRET_KEY (64 hex chars, no default),
// KEYPANEL_STORE (sqlite), KEYPANEL_AUTO_CLOSE_DELAY (1.5s),
// KEYPANEL_GEMINI_MODEL (gemini-2.0-flash), KEYPANEL_SESSION_IDLE (30m).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("KEYPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "keypanel.db"
	if v, ok := os.LookupEnv("KEYPANEL_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("KEYPANEL_SECRET_KEY"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("KEYPANEL_SECRET_KEY must be hex encoded: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("KEYPANEL_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	store := StoreSQLite
	if v, ok := os.LookupEnv("KEYPANEL_STORE"); ok && v != "" {
		switch StoreBackend(v) {
		case StoreSQLite, StoreKeyring, StoreMemory:
			store = StoreBackend(v)
		default:
			return nil, fmt.Errorf("KEYPANEL_STORE has invalid value %q: must be sqlite, keyring or memory", v)
		}
	}

	autoCloseDelay, err := durationEnv("KEYPANEL_AUTO_CLOSE_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	sessionIdle, err := durationEnv("KEYPANEL_SESSION_IDLE", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	geminiModel := "gemini-2.0-flash"
	if v, ok := os.LookupEnv("KEYPANEL_GEMINI_MODEL"); ok && v != "" {
		geminiModel = v
	}

	return &Config{
		ListenAddr:     listenAddr,
		DBPath:         dbPath,
		SecretKey:      secretKey,
		Store:          store,
		AutoCloseDelay: autoCloseDelay,
		GeminiModel:    geminiModel,
		SessionIdle:    sessionIdle,
	}, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return parsed, nil
}
