package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Ledger   LedgerConfig
	Storage  StorageConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level       string
	Development bool
}

// LedgerConfig tunes the purchase/sale transactions.
type LedgerConfig struct {
	TxTimeout        time.Duration
	MaxRetryAttempts int
	RetryBackoff     time.Duration
}

type StorageConfig struct {
	Driver      string
	FixturePath string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads the optional YAML file at path, then lets environment variables
// override any key (ledger.tx_timeout -> LEDGER_TX_TIMEOUT).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("db.auto_migrate"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Ledger: LedgerConfig{
			TxTimeout:        v.GetDuration("ledger.tx_timeout"),
			MaxRetryAttempts: v.GetInt("ledger.max_retry_attempts"),
			RetryBackoff:     v.GetDuration("ledger.retry_backoff"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("storage.driver")),
			FixturePath: v.GetString("storage.fixture_path"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Path:    v.GetString("metrics.path"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "30s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "stockroom")
	v.SetDefault("db.password", "secret")
	v.SetDefault("db.name", "stockroom")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "5m")
	v.SetDefault("db.auto_migrate", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("ledger.tx_timeout", "5s")
	v.SetDefault("ledger.max_retry_attempts", 3)
	v.SetDefault("ledger.retry_backoff", "100ms")

	v.SetDefault("storage.driver", StorageMySQL)
	v.SetDefault("storage.fixture_path", "config/fixture.yaml")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Ledger.MaxRetryAttempts < 1 {
		return fmt.Errorf("ledger.max_retry_attempts must be at least 1, got %d", c.Ledger.MaxRetryAttempts)
	}
	if c.Ledger.TxTimeout <= 0 {
		return fmt.Errorf("ledger.tx_timeout must be positive")
	}
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
