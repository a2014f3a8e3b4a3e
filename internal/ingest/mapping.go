// Package ingest loads bank statement and general ledger CSV files into the
// transaction models the matching engine consumes.
//
// Real-world exports disagree on almost everything: column names, date
// formats, currency symbols, how negatives are written. The column mappings
// here pin each logical field to a concrete header name, and the loader
// normalizes values as it reads. Rows that fail to parse are dropped and
// counted rather than failing the whole file.
//
// Example usage:
//
//	loader := ingest.NewLoader(nil)
//	transactions, stats, err := loader.LoadBankFile("statement.csv", ingest.DefaultBankMapping())
package ingest

import (
	"github.com/pattydubb/venice-recked/pkg/errors"
)

// BankMapping names the CSV columns that hold each bank statement field.
// Date, Amount and Description are required; the rest are optional and left
// empty when blank ("" means the column is absent from the file).
type BankMapping struct {
	Date        string `mapstructure:"date"`
	Amount      string `mapstructure:"amount"`
	Description string `mapstructure:"description"`
	BankAccount string `mapstructure:"bank_account"`
	CheckNumber string `mapstructure:"check_number"`
}

// DefaultBankMapping matches the header names most statement exports use.
func DefaultBankMapping() BankMapping {
	return BankMapping{
		Date:        "Date",
		Amount:      "Amount",
		Description: "Description",
	}
}

// Validate checks that all required columns are named.
func (m BankMapping) Validate() error {
	if m.Date == "" {
		return errors.ConfigurationError("bank_mapping.date", m.Date, nil).
			WithSuggestion("Name the column that holds the transaction date")
	}
	if m.Amount == "" {
		return errors.ConfigurationError("bank_mapping.amount", m.Amount, nil).
			WithSuggestion("Name the column that holds the transaction amount")
	}
	if m.Description == "" {
		return errors.ConfigurationError("bank_mapping.description", m.Description, nil).
			WithSuggestion("Name the column that holds the transaction description")
	}
	return nil
}

// requiredColumns lists the headers the file must contain.
func (m BankMapping) requiredColumns() []string {
	return []string{m.Date, m.Amount, m.Description}
}

// GLMapping names the CSV columns that hold each general ledger field.
type GLMapping struct {
	Date        string `mapstructure:"date"`
	Amount      string `mapstructure:"amount"`
	Description string `mapstructure:"description"`
	GLAccount   string `mapstructure:"gl_account"`
	Reference   string `mapstructure:"reference"`
	Department  string `mapstructure:"department"`
	Class       string `mapstructure:"class"`
}

// DefaultGLMapping matches the header names most ledger exports use.
func DefaultGLMapping() GLMapping {
	return GLMapping{
		Date:        "Date",
		Amount:      "Amount",
		Description: "Description",
		GLAccount:   "Account",
	}
}

// Validate checks that all required columns are named.
func (m GLMapping) Validate() error {
	if m.Date == "" {
		return errors.ConfigurationError("gl_mapping.date", m.Date, nil).
			WithSuggestion("Name the column that holds the entry date")
	}
	if m.Amount == "" {
		return errors.ConfigurationError("gl_mapping.amount", m.Amount, nil).
			WithSuggestion("Name the column that holds the entry amount")
	}
	if m.Description == "" {
		return errors.ConfigurationError("gl_mapping.description", m.Description, nil).
			WithSuggestion("Name the column that holds the entry description")
	}
	return nil
}

func (m GLMapping) requiredColumns() []string {
	return []string{m.Date, m.Amount, m.Description}
}
