package config

import (
	"testing"

	"github.com/pattydubb/venice-recked/internal/report"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBankMappingDefaults(t *testing.T) {
	viper.Reset()
	mapping := CreateBankMapping()

	assert.Equal(t, "Date", mapping.Date)
	assert.Equal(t, "Amount", mapping.Amount)
	assert.Equal(t, "Description", mapping.Description)
	assert.Empty(t, mapping.BankAccount)
}

func TestCreateBankMappingOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("bank-date-column", "Posting Date")
	viper.Set("bank-amount-column", "Debit")
	viper.Set("bank-check-column", "Check No")

	mapping := CreateBankMapping()
	assert.Equal(t, "Posting Date", mapping.Date)
	assert.Equal(t, "Debit", mapping.Amount)
	assert.Equal(t, "Description", mapping.Description)
	assert.Equal(t, "Check No", mapping.CheckNumber)
}

func TestCreateGLMappingOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("gl-account-column", "GL Acct")
	viper.Set("gl-reference-column", "Ref")

	mapping := CreateGLMapping()
	assert.Equal(t, "GL Acct", mapping.GLAccount)
	assert.Equal(t, "Ref", mapping.Reference)
	assert.Equal(t, "Date", mapping.Date)
}

func TestCreateMatcherConfig(t *testing.T) {
	cfg, err := CreateMatcherConfig(1.5, 7, 0.3)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.AmountTolerancePercent)
	assert.Equal(t, 7, cfg.DateToleranceDays)
	assert.Equal(t, 0.3, cfg.DescriptionThreshold)
}

func TestCreateMatcherConfigRejectsInvalid(t *testing.T) {
	_, err := CreateMatcherConfig(-1, 5, 0.4)
	assert.Error(t, err)

	_, err = CreateMatcherConfig(1, -1, 0.4)
	assert.Error(t, err)

	_, err = CreateMatcherConfig(1, 5, 2.0)
	assert.Error(t, err)
}

func TestCreateReportConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := CreateReportConfig("json")
	assert.Equal(t, report.FormatJSON, cfg.Format)
	assert.False(t, cfg.IncludeUnbalancedGroupsOnly)

	viper.Set("unbalanced-only", true)
	cfg = CreateReportConfig("csv")
	assert.Equal(t, report.FormatCSV, cfg.Format)
	assert.True(t, cfg.IncludeUnbalancedGroupsOnly)
}
