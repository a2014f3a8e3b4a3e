// Package config builds component configurations from CLI flags, config
// file entries, and environment variables.
package config

import (
	"fmt"

	"github.com/pattydubb/venice-recked/internal/ingest"
	"github.com/pattydubb/venice-recked/internal/matcher"
	"github.com/pattydubb/venice-recked/internal/report"
	"github.com/spf13/viper"
)

// CreateBankMapping builds the bank statement column mapping, starting from
// the defaults and applying any overrides set in viper.
func CreateBankMapping() ingest.BankMapping {
	mapping := ingest.DefaultBankMapping()

	if v := viper.GetString("bank-date-column"); v != "" {
		mapping.Date = v
	}
	if v := viper.GetString("bank-amount-column"); v != "" {
		mapping.Amount = v
	}
	if v := viper.GetString("bank-description-column"); v != "" {
		mapping.Description = v
	}
	if v := viper.GetString("bank-account-column"); v != "" {
		mapping.BankAccount = v
	}
	if v := viper.GetString("bank-check-column"); v != "" {
		mapping.CheckNumber = v
	}

	return mapping
}

// CreateGLMapping builds the general ledger column mapping the same way.
func CreateGLMapping() ingest.GLMapping {
	mapping := ingest.DefaultGLMapping()

	if v := viper.GetString("gl-date-column"); v != "" {
		mapping.Date = v
	}
	if v := viper.GetString("gl-amount-column"); v != "" {
		mapping.Amount = v
	}
	if v := viper.GetString("gl-description-column"); v != "" {
		mapping.Description = v
	}
	if v := viper.GetString("gl-account-column"); v != "" {
		mapping.GLAccount = v
	}
	if v := viper.GetString("gl-reference-column"); v != "" {
		mapping.Reference = v
	}

	return mapping
}

// CreateMatcherConfig builds the matching configuration from tolerance
// flags, falling back to the engine defaults.
func CreateMatcherConfig(amountTolerance float64, dateTolerance int, descriptionThreshold float64) (*matcher.Config, error) {
	cfg := matcher.DefaultConfig()
	cfg.AmountTolerancePercent = amountTolerance
	cfg.DateToleranceDays = dateTolerance
	cfg.DescriptionThreshold = descriptionThreshold

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching configuration: %w", err)
	}
	return cfg, nil
}

// CreateReportConfig builds the report configuration for the chosen format.
func CreateReportConfig(format string) *report.Config {
	cfg := report.DefaultConfig()
	cfg.Format = report.OutputFormat(format)
	cfg.IncludeUnbalancedGroupsOnly = viper.GetBool("unbalanced-only")
	return cfg
}
