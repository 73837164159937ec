package domain

import (
	"fmt"
	"os"
)

// Behaviour kept on the Config entity so callers do not re-derive defaults.

// GetWidthSetting parses term_width.
func (c *Config) GetWidthSetting() (WidthSetting, error) {
	return ParseWidthSetting(c.TermWidth)
}

// GetHistorySize returns the history bound, falling back to the default when unset.
// A negative value means unlimited and is reported as 0.
func (c *Config) GetHistorySize() int {
	switch {
	case c.HistorySize < 0:
		return 0
	case c.HistorySize == 0:
		return DefaultHistorySize
	default:
		return c.HistorySize
	}
}

// GetPager returns the external viewer command.
func (c *Config) GetPager() string {
	if c.Pager != "" {
		return c.Pager
	}
	if env := os.Getenv("PAGER"); env != "" {
		return env
	}
	return DefaultPager
}

// GetDefaultSession returns the session loaded when -s is not given.
func (c *Config) GetDefaultSession() string {
	if c.DefaultSession == "" {
		return DefaultSessionName
	}
	return c.DefaultSession
}

// ValidateConsistency checks the options that cannot be defaulted.
func (c *Config) ValidateConsistency() error {
	if _, err := c.GetWidthSetting(); err != nil {
		return err
	}
	if c.HistorySize < -1 {
		return fmt.Errorf("history_size must be >= -1, got %d", c.HistorySize)
	}
	return nil
}
