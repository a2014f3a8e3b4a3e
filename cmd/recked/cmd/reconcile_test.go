package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.csv")
	require.NoError(t, os.WriteFile(validFile, []byte("test"), 0o644))

	tests := []struct {
		name        string
		filePath    string
		expectError bool
	}{
		{name: "valid file", filePath: validFile},
		{name: "empty path", filePath: "", expectError: true},
		{name: "non-existent file", filePath: "/non/existent/file.csv", expectError: true},
		{name: "directory instead of file", filePath: tmpDir, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, "test file")
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func writeReconcileFixtures(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := t.TempDir()

	bankFile := filepath.Join(tmpDir, "statement.csv")
	require.NoError(t, os.WriteFile(bankFile, []byte(
		"Date,Amount,Description\n"+
			"2024-01-15,100.00,Office supplies\n"+
			"2024-01-16,999.00,No counterpart\n"), 0o644))

	glFile := filepath.Join(tmpDir, "ledger.csv")
	require.NoError(t, os.WriteFile(glFile, []byte(
		"Date,Amount,Description\n"+
			"2024-01-15,100.00,Supplies\n"), 0o644))

	return bankFile, glFile
}

func setReconcileDefaults(t *testing.T, bankFile, glFile string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("bank-file", bankFile)
	viper.Set("gl-file", glFile)
	viper.Set("output-format", "console")
	viper.Set("date-tolerance", 5)
	viper.Set("amount-tolerance", 1.0)
	viper.Set("description-threshold", 0.4)
}

func TestValidateReconcileFlags(t *testing.T) {
	bankFile, glFile := writeReconcileFixtures(t)

	t.Run("valid flags", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, glFile)
		assert.NoError(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("missing bank file", func(t *testing.T) {
		setReconcileDefaults(t, "", glFile)
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("missing gl file", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, "")
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("invalid output format", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, glFile)
		viper.Set("output-format", "xml")
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("negative date tolerance", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, glFile)
		viper.Set("date-tolerance", -1)
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("amount tolerance out of range", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, glFile)
		viper.Set("amount-tolerance", 150.0)
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})

	t.Run("missing output directory", func(t *testing.T) {
		setReconcileDefaults(t, bankFile, glFile)
		viper.Set("output-file", "/no/such/dir/report.json")
		assert.Error(t, validateReconcileFlags(reconcileCmd, nil))
	})
}

func TestRunReconcileEndToEnd(t *testing.T) {
	bankFile, glFile := writeReconcileFixtures(t)
	outputFile := filepath.Join(t.TempDir(), "report.json")

	setReconcileDefaults(t, bankFile, glFile)
	viper.Set("output-format", "json")
	viper.Set("output-file", outputFile)

	require.NoError(t, validateReconcileFlags(reconcileCmd, nil))
	require.NoError(t, runReconcile(reconcileCmd, nil))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var rpt map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rpt))

	stats, ok := rpt["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), stats["totalBankTransactions"])
	assert.Equal(t, float64(1), stats["potentialBankTransactions"])
	assert.Equal(t, float64(1), stats["unmatchedBankTransactions"])

	groups, ok := rpt["matchGroups"].([]interface{})
	require.True(t, ok)
	assert.Len(t, groups, 1)
}

func TestRunReconcileConfirmExact(t *testing.T) {
	bankFile, glFile := writeReconcileFixtures(t)
	outputFile := filepath.Join(t.TempDir(), "report.json")

	setReconcileDefaults(t, bankFile, glFile)
	viper.Set("output-format", "json")
	viper.Set("output-file", outputFile)
	viper.Set("confirm-exact", true)

	require.NoError(t, validateReconcileFlags(reconcileCmd, nil))
	require.NoError(t, runReconcile(reconcileCmd, nil))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var rpt map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rpt))

	stats := rpt["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["matchedBankTransactions"])
	assert.Equal(t, 50.0, stats["matchedRate"])
}
