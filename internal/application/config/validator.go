package config

import (
	"fmt"
	"os"

	"github.com/burst-go/burst/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return fmt.Errorf("unsupported config_format_version %s", cfg.ConfigFormatVersion)
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validatePayloads(cfg.PayloadsDir); err != nil {
		return err
	}
	return nil
}

func validatePayloads(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		// A missing directory only triggers the startup warning.
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("payloads_dir %s is not a directory", dir)
	}
	return nil
}
