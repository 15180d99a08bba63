package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Capture  CaptureConfig  `yaml:"capture"`
	Billing  BillingConfig  `yaml:"billing"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// CaptureConfig holds time-capture heuristic settings.
type CaptureConfig struct {
	// IdleThresholdMinutes is the minimum signal gap treated as idle time.
	IdleThresholdMinutes int `yaml:"idle_threshold_minutes" env:"CAPTURE_IDLE_THRESHOLD_MINUTES" env-default:"5"`
	// MaxMergeIdleMinutes is the largest idle gap merged into one session.
	MaxMergeIdleMinutes int `yaml:"max_merge_idle_minutes" env:"CAPTURE_MAX_MERGE_IDLE_MINUTES" env-default:"10"`
}

// BillingConfig holds invoice generation settings.
type BillingConfig struct {
	// DefaultCurrency is stamped on invoices created without an explicit currency.
	DefaultCurrency string `yaml:"default_currency" env:"BILLING_DEFAULT_CURRENCY" env-default:"USD"`
	// DueDays is added to the issue date to produce the default due date.
	DueDays int `yaml:"due_days" env:"BILLING_DUE_DAYS" env-default:"30"`
}

// WorkerConfig holds background worker and scheduler settings.
type WorkerConfig struct {
	// PoolSize is the number of concurrent job workers.
	PoolSize int `yaml:"pool_size" env:"WORKER_POOL_SIZE" env-default:"4"`
	// QueueSize is the pending job buffer; submission blocks when full.
	QueueSize int `yaml:"queue_size" env:"WORKER_QUEUE_SIZE" env-default:"64"`
	// MaxAttempts is the total tries per job including the first run.
	MaxAttempts int `yaml:"max_attempts" env:"WORKER_MAX_ATTEMPTS" env-default:"3"`
	// RetryBackoff is the base delay between attempts; doubles each retry.
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"WORKER_RETRY_BACKOFF" env-default:"5s"`
	// DailyAggregationSpec is the cron spec for the daily totals job.
	DailyAggregationSpec string `yaml:"daily_aggregation_spec" env:"WORKER_DAILY_AGGREGATION_SPEC" env-default:"0 2 * * *"`
	// ShutdownTimeout bounds the drain on graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"WORKER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
