package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Capture.validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := c.Billing.validate(); err != nil {
		return fmt.Errorf("billing: %w", err)
	}
	if err := c.Worker.validate(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	return nil
}

func (c *CaptureConfig) validate() error {
	if c.IdleThresholdMinutes <= 0 {
		return fmt.Errorf("idle_threshold_minutes must be > 0 (got %d)", c.IdleThresholdMinutes)
	}
	if c.MaxMergeIdleMinutes < c.IdleThresholdMinutes {
		return fmt.Errorf("max_merge_idle_minutes must be >= idle_threshold_minutes (got %d < %d)",
			c.MaxMergeIdleMinutes, c.IdleThresholdMinutes)
	}
	return nil
}

func (c *BillingConfig) validate() error {
	if len(c.DefaultCurrency) != 3 {
		return fmt.Errorf("default_currency must be a 3-letter code (got %q)", c.DefaultCurrency)
	}
	if c.DueDays < 0 {
		return fmt.Errorf("due_days must be >= 0 (got %d)", c.DueDays)
	}
	return nil
}

func (c *WorkerConfig) validate() error {
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be > 0 (got %d)", c.PoolSize)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0 (got %d)", c.QueueSize)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", c.MaxAttempts)
	}
	return nil
}
