package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pattydubb/venice-recked/internal/models"
	"github.com/pattydubb/venice-recked/pkg/errors"
	"github.com/pattydubb/venice-recked/pkg/logger"
)

// LoadConfig controls how CSV files are read.
type LoadConfig struct {
	Delimiter        rune
	TrimLeadingSpace bool
	SkipEmptyRows    bool
}

// DefaultLoadConfig returns a configuration with sensible defaults.
func DefaultLoadConfig() *LoadConfig {
	return &LoadConfig{
		Delimiter:        ',',
		TrimLeadingSpace: true,
		SkipEmptyRows:    true,
	}
}

// RowError records why a single row was dropped during loading.
type RowError struct {
	Line    int
	Field   string
	Value   string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d, field %s=%q: %s", e.Line, e.Field, e.Value, e.Message)
}

// LoadStats summarizes a load: how many rows were read, how many became
// transactions, and why the rest were dropped.
type LoadStats struct {
	TotalRows   int
	LoadedRows  int
	DroppedRows int
	Errors      []RowError
}

// HasErrors reports whether any rows were dropped.
func (s *LoadStats) HasErrors() bool {
	return s.DroppedRows > 0
}

func (s *LoadStats) String() string {
	return fmt.Sprintf("loaded %d of %d rows (%d dropped)", s.LoadedRows, s.TotalRows, s.DroppedRows)
}

// SampleErrors returns up to max drop reasons for logging.
func (s *LoadStats) SampleErrors(max int) []string {
	limit := len(s.Errors)
	if max > 0 && max < limit {
		limit = max
	}
	samples := make([]string, 0, limit)
	for _, err := range s.Errors[:limit] {
		samples = append(samples, err.Error())
	}
	return samples
}

func (s *LoadStats) addError(line int, field, value, message string) {
	s.Errors = append(s.Errors, RowError{Line: line, Field: field, Value: value, Message: message})
	s.DroppedRows++
}

// Loader reads transaction CSV files.
type Loader struct {
	config *LoadConfig
	log    logger.Logger
	newID  func() string
}

// NewLoader creates a Loader. A nil config gets defaults.
func NewLoader(config *LoadConfig) *Loader {
	if config == nil {
		config = DefaultLoadConfig()
	}
	return &Loader{
		config: config,
		log:    logger.GetGlobalLogger().WithComponent("ingest"),
		newID:  uuid.NewString,
	}
}

// WithIDGenerator overrides the transaction id source. Returns the loader
// for chaining.
func (l *Loader) WithIDGenerator(newID func() string) *Loader {
	l.newID = newID
	return l
}

// LoadBankFile reads a bank statement CSV into bank transactions. Rows that
// fail to parse are dropped and reported in the returned stats.
func (l *Loader) LoadBankFile(path string, mapping BankMapping) ([]models.BankTransaction, *LoadStats, error) {
	if err := mapping.Validate(); err != nil {
		return nil, nil, err
	}

	file, reader, err := l.open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	columns, err := l.readHeader(reader, path, mapping.requiredColumns())
	if err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{}
	var transactions []models.BankTransaction

	line := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			stats.addError(line, "row", "", readErr.Error())
			stats.TotalRows++
			continue
		}
		if l.config.SkipEmptyRows && isEmptyRecord(record) {
			continue
		}
		stats.TotalRows++

		tx, ok := l.parseBankRow(record, columns, mapping, line, stats)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
		stats.LoadedRows++
	}

	l.log.WithFields(logger.Fields{
		"file":    path,
		"loaded":  stats.LoadedRows,
		"dropped": stats.DroppedRows,
	}).Info("Loaded bank statement file")

	if stats.HasErrors() {
		l.log.WithFields(logger.Fields{
			"file":          path,
			"sample_errors": stats.SampleErrors(5),
		}).Warn("Some bank statement rows were dropped")
	}

	return transactions, stats, nil
}

// LoadGLFile reads a general ledger CSV into GL transactions.
func (l *Loader) LoadGLFile(path string, mapping GLMapping) ([]models.GLTransaction, *LoadStats, error) {
	if err := mapping.Validate(); err != nil {
		return nil, nil, err
	}

	file, reader, err := l.open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	columns, err := l.readHeader(reader, path, mapping.requiredColumns())
	if err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{}
	var transactions []models.GLTransaction

	line := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			stats.addError(line, "row", "", readErr.Error())
			stats.TotalRows++
			continue
		}
		if l.config.SkipEmptyRows && isEmptyRecord(record) {
			continue
		}
		stats.TotalRows++

		tx, ok := l.parseGLRow(record, columns, mapping, line, stats)
		if !ok {
			continue
		}
		transactions = append(transactions, tx)
		stats.LoadedRows++
	}

	l.log.WithFields(logger.Fields{
		"file":    path,
		"loaded":  stats.LoadedRows,
		"dropped": stats.DroppedRows,
	}).Info("Loaded general ledger file")

	if stats.HasErrors() {
		l.log.WithFields(logger.Fields{
			"file":          path,
			"sample_errors": stats.SampleErrors(5),
		}).Warn("Some general ledger rows were dropped")
	}

	return transactions, stats, nil
}

func (l *Loader) parseBankRow(record []string, columns map[string]int, mapping BankMapping, line int, stats *LoadStats) (models.BankTransaction, bool) {
	rawDate := fieldValue(record, columns, mapping.Date)
	date, err := models.ParseDate(rawDate)
	if err != nil {
		stats.addError(line, mapping.Date, rawDate, "unparseable date")
		return models.BankTransaction{}, false
	}

	rawAmount := fieldValue(record, columns, mapping.Amount)
	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		stats.addError(line, mapping.Amount, rawAmount, "unparseable amount")
		return models.BankTransaction{}, false
	}

	return models.BankTransaction{
		ID:          l.newID(),
		Date:        date,
		Amount:      amount,
		Description: descriptionValue(record, columns, mapping.Description),
		MatchStatus: models.StatusUnmatched,
		UniqueKey:   models.BankUniqueKey(date, amount),
		BankAccount: fieldValue(record, columns, mapping.BankAccount),
		CheckNumber: fieldValue(record, columns, mapping.CheckNumber),
	}, true
}

func (l *Loader) parseGLRow(record []string, columns map[string]int, mapping GLMapping, line int, stats *LoadStats) (models.GLTransaction, bool) {
	rawDate := fieldValue(record, columns, mapping.Date)
	date, err := models.ParseDate(rawDate)
	if err != nil {
		stats.addError(line, mapping.Date, rawDate, "unparseable date")
		return models.GLTransaction{}, false
	}

	rawAmount := fieldValue(record, columns, mapping.Amount)
	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		stats.addError(line, mapping.Amount, rawAmount, "unparseable amount")
		return models.GLTransaction{}, false
	}

	return models.GLTransaction{
		ID:          l.newID(),
		Date:        date,
		Amount:      amount,
		Description: descriptionValue(record, columns, mapping.Description),
		MatchStatus: models.StatusUnmatched,
		GLAccount:   fieldValue(record, columns, mapping.GLAccount),
		Reference:   fieldValue(record, columns, mapping.Reference),
		Department:  fieldValue(record, columns, mapping.Department),
		Class:       fieldValue(record, columns, mapping.Class),
	}, true
}

func (l *Loader) open(path string) (*os.File, *csv.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}

	reader := csv.NewReader(file)
	reader.Comma = l.config.Delimiter
	reader.TrimLeadingSpace = l.config.TrimLeadingSpace
	reader.FieldsPerRecord = -1

	return file, reader, nil
}

// readHeader reads the header row and resolves the mapped columns,
// case-insensitively.
func (l *Loader) readHeader(reader *csv.Reader, path string, required []string) (map[string]int, error) {
	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.ParseError(errors.CodeInvalidFormat, path, 1, "headers", "", err).
				WithSuggestion("Ensure the file contains a header row and data rows")
		}
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 1, "headers", "", err).
			WithSuggestion("Check the file format and ensure it's a valid CSV")
	}

	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.ParseError(errors.CodeMissingColumn, path, 1, "headers", strings.Join(missing, ", "), nil).
			WithSuggestion(fmt.Sprintf("Ensure the CSV file contains these headers: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

// fieldValue looks up a mapped column in a record. Unmapped or missing
// columns yield "".
func fieldValue(record []string, columns map[string]int, column string) string {
	if column == "" {
		return ""
	}
	index, ok := columns[strings.ToLower(column)]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// descriptionValue reads the description column, substituting a placeholder
// when the cell is empty so every loaded transaction carries a description.
func descriptionValue(record []string, columns map[string]int, column string) string {
	if value := fieldValue(record, columns, column); value != "" {
		return value
	}
	return "No description"
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
