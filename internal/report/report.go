// Package report renders reconciliation results for people and machines.
// Console output is for interactive review, JSON for downstream tooling,
// CSV for spreadsheet follow-up.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pattydubb/venice-recked/internal/matcher"
	"github.com/pattydubb/venice-recked/internal/models"
	"github.com/pattydubb/venice-recked/internal/workspace"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Config holds configuration options for report generation
type Config struct {
	Format OutputFormat `json:"format"`

	IncludeMatchGroups          bool `json:"include_match_groups"`
	IncludeUnmatchedBank        bool `json:"include_unmatched_bank"`
	IncludeUnmatchedGL          bool `json:"include_unmatched_gl"`
	IncludeUnbalancedGroupsOnly bool `json:"include_unbalanced_groups_only"`

	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultConfig returns a default report configuration
func DefaultConfig() *Config {
	return &Config{
		Format:               FormatConsole,
		IncludeMatchGroups:   true,
		IncludeUnmatchedBank: true,
		IncludeUnmatchedGL:   true,
		CSVDelimiter:         ',',
		CSVHeaders:           true,
	}
}

// Validate validates the report configuration
func (c *Config) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	return nil
}

// Report is the complete result snapshot a generator renders.
type Report struct {
	GeneratedAt   time.Time                `json:"generatedAt"`
	Stats         matcher.Stats            `json:"stats"`
	MatchGroups   []models.MatchGroup      `json:"matchGroups,omitempty"`
	UnmatchedBank []models.BankTransaction `json:"unmatchedBank,omitempty"`
	UnmatchedGL   []models.GLTransaction   `json:"unmatchedGL,omitempty"`
}

// FromWorkspace snapshots the workspace into a Report.
func FromWorkspace(ws *workspace.Workspace) *Report {
	rpt := &Report{
		GeneratedAt: time.Now(),
		Stats:       ws.Stats(),
		MatchGroups: ws.MatchGroups(),
	}
	for _, tx := range ws.BankTransactions() {
		if tx.MatchStatus == models.StatusUnmatched {
			rpt.UnmatchedBank = append(rpt.UnmatchedBank, tx)
		}
	}
	for _, tx := range ws.GLTransactions() {
		if tx.MatchStatus == models.StatusUnmatched {
			rpt.UnmatchedGL = append(rpt.UnmatchedGL, tx)
		}
	}
	return rpt
}

// Generator generates reconciliation reports in various formats
type Generator struct {
	config *Config
}

// NewGenerator creates a new report generator with the specified configuration
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return &Generator{config: config}, nil
}

// Generate renders the report to the provided writer.
func (g *Generator) Generate(rpt *Report, writer io.Writer) error {
	if rpt == nil {
		return fmt.Errorf("report cannot be nil")
	}

	switch g.config.Format {
	case FormatConsole:
		return g.generateConsole(rpt, writer)
	case FormatJSON:
		return g.generateJSON(rpt, writer)
	case FormatCSV:
		return g.generateCSV(rpt, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", g.config.Format)
	}
}

func (g *Generator) generateConsole(rpt *Report, writer io.Writer) error {
	fmt.Fprintf(writer, "RECONCILIATION REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n\n", rpt.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(writer, "=== SUMMARY ===\n")
	g.printSummary(rpt.Stats, writer)
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "=== FINANCIAL SUMMARY ===\n")
	g.printFinancialSummary(rpt.Stats, writer)
	fmt.Fprintf(writer, "\n")

	if g.config.IncludeMatchGroups && len(rpt.MatchGroups) > 0 {
		fmt.Fprintf(writer, "=== MATCH GROUPS ===\n")
		g.printMatchGroups(rpt.MatchGroups, writer)
		fmt.Fprintf(writer, "\n")
	}

	if g.config.IncludeUnmatchedBank && len(rpt.UnmatchedBank) > 0 {
		fmt.Fprintf(writer, "=== UNMATCHED BANK TRANSACTIONS ===\n")
		for _, tx := range rpt.UnmatchedBank {
			fmt.Fprintf(writer, "  %s  %10s  %s\n",
				tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2), truncate(tx.Description, 60))
		}
		fmt.Fprintf(writer, "\n")
	}

	if g.config.IncludeUnmatchedGL && len(rpt.UnmatchedGL) > 0 {
		fmt.Fprintf(writer, "=== UNMATCHED GL TRANSACTIONS ===\n")
		for _, tx := range rpt.UnmatchedGL {
			fmt.Fprintf(writer, "  %s  %10s  %s\n",
				tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2), truncate(tx.Description, 60))
		}
		fmt.Fprintf(writer, "\n")
	}

	return nil
}

func (g *Generator) printSummary(stats matcher.Stats, writer io.Writer) {
	fmt.Fprintf(writer, "Bank Transactions:\n")
	fmt.Fprintf(writer, "  Total:     %d\n", stats.TotalBankTransactions)
	fmt.Fprintf(writer, "  Matched:   %d\n", stats.MatchedBankTransactions)
	fmt.Fprintf(writer, "  Potential: %d\n", stats.PotentialBankTransactions)
	fmt.Fprintf(writer, "  Unmatched: %d\n", stats.UnmatchedBankTransactions)
	fmt.Fprintf(writer, "GL Transactions:\n")
	fmt.Fprintf(writer, "  Total:     %d\n", stats.TotalGLTransactions)
	fmt.Fprintf(writer, "  Matched:   %d\n", stats.MatchedGLTransactions)
	fmt.Fprintf(writer, "  Potential: %d\n", stats.PotentialGLTransactions)
	fmt.Fprintf(writer, "  Unmatched: %d\n", stats.UnmatchedGLTransactions)
	fmt.Fprintf(writer, "Match Rate:  %.1f%%\n", stats.MatchedRate)
	fmt.Fprintf(writer, "Groups:      %d\n", stats.MatchGroups)
}

func (g *Generator) printFinancialSummary(stats matcher.Stats, writer io.Writer) {
	fmt.Fprintf(writer, "Bank Total:       %s\n", stats.BankTotal.StringFixed(2))
	fmt.Fprintf(writer, "GL Total:         %s\n", stats.GLTotal.StringFixed(2))
	fmt.Fprintf(writer, "Difference:       %s\n", stats.Difference.StringFixed(2))
	fmt.Fprintf(writer, "Unmatched Bank:   %s\n", stats.UnmatchedBankTotal.StringFixed(2))
	fmt.Fprintf(writer, "Unmatched GL:     %s\n", stats.UnmatchedGLTotal.StringFixed(2))
}

func (g *Generator) printMatchGroups(groups []models.MatchGroup, writer io.Writer) {
	for _, group := range groups {
		if g.config.IncludeUnbalancedGroupsOnly && group.IsBalanced {
			continue
		}
		balance := "balanced"
		if !group.IsBalanced {
			balance = "UNBALANCED"
		}
		fmt.Fprintf(writer, "  %s  %-9s  %d bank / %d gl  %s vs %s  (%s)\n",
			group.ID,
			group.Status,
			len(group.BankTransactionIDs),
			len(group.GLTransactionIDs),
			group.BankTotal.StringFixed(2),
			group.GLTotal.StringFixed(2),
			balance)
	}
}

func (g *Generator) generateJSON(rpt *Report, writer io.Writer) error {
	out := *rpt
	if !g.config.IncludeMatchGroups {
		out.MatchGroups = nil
	}
	if !g.config.IncludeUnmatchedBank {
		out.UnmatchedBank = nil
	}
	if !g.config.IncludeUnmatchedGL {
		out.UnmatchedGL = nil
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&out)
}

func (g *Generator) generateCSV(rpt *Report, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = g.config.CSVDelimiter
	defer csvWriter.Flush()

	if g.config.CSVHeaders {
		headers := []string{
			"Type",
			"ID",
			"Date",
			"Amount",
			"Description",
			"Status",
			"Match_Group",
			"Balanced",
		}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	if g.config.IncludeMatchGroups {
		for _, group := range rpt.MatchGroups {
			if g.config.IncludeUnbalancedGroupsOnly && group.IsBalanced {
				continue
			}
			record := []string{
				"Match Group",
				group.ID,
				group.CreatedAt.Format("2006-01-02"),
				group.BankTotal.StringFixed(2) + " / " + group.GLTotal.StringFixed(2),
				group.Notes,
				string(group.Status),
				group.ID,
				fmt.Sprintf("%t", group.IsBalanced),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write match group record: %w", err)
			}
		}
	}

	if g.config.IncludeUnmatchedBank {
		for _, tx := range rpt.UnmatchedBank {
			record := []string{
				"Unmatched Bank Transaction",
				tx.ID,
				tx.Date.Format("2006-01-02"),
				tx.Amount.StringFixed(2),
				tx.Description,
				string(tx.MatchStatus),
				"",
				"",
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write unmatched bank record: %w", err)
			}
		}
	}

	if g.config.IncludeUnmatchedGL {
		for _, tx := range rpt.UnmatchedGL {
			record := []string{
				"Unmatched GL Transaction",
				tx.ID,
				tx.Date.Format("2006-01-02"),
				tx.Amount.StringFixed(2),
				tx.Description,
				string(tx.MatchStatus),
				"",
				"",
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write unmatched GL record: %w", err)
			}
		}
	}

	return nil
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
