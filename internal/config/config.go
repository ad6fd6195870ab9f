package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Ledger  LedgerConfig
	MongoDB MongoDBConfig
	Sync    SyncConfig
	Backup  BackupConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LedgerConfig identifies whose books this instance keeps and where the
// local fallback files live.
type LedgerConfig struct {
	ID      string
	DataDir string
}

// MongoDBConfig holds settings for MongoDB. An empty URI runs the
// application in local-only mode.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SyncConfig controls the connectivity probe that decides when queued
// offline writes are replayed.
type SyncConfig struct {
	ProbeURL     string
	PollSchedule string
}

// BackupConfig holds scheduler-related settings for the periodic backup.
type BackupConfig struct {
	CronSchedule string
}

// SheetsConfig contains configuration required to interact with Google
// Sheets. Both fields must be set together; leaving them empty disables the
// spreadsheet backup.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the spreadsheet backup is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Ledger: LedgerConfig{
			ID:      getenvWithDefault("LEDGER_ID", "default"),
			DataDir: getenvWithDefault("DATA_DIR", "data"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "pressbook"),
		},
		Sync: SyncConfig{
			ProbeURL:     getenvWithDefault("SYNC_PROBE_URL", "https://www.google.com/generate_204"),
			PollSchedule: getenvWithDefault("SYNC_POLL_SCHEDULE", "@every 1m"),
		},
		Backup: BackupConfig{
			CronSchedule: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 20 * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_BACKUP_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Ledger.ID == "" {
		return errors.New("LEDGER_ID must be provided")
	}
	if c.Ledger.DataDir == "" {
		return errors.New("DATA_DIR must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Sync.PollSchedule == "" {
		return errors.New("SYNC_POLL_SCHEDULE must be provided")
	}

	if c.Backup.CronSchedule == "" {
		return errors.New("BACKUP_CRON_SCHEDULE must be provided")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_BACKUP_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
