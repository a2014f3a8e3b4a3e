package matcher

import (
	"github.com/pattydubb/venice-recked/internal/models"
	"github.com/shopspring/decimal"
)

// Stats aggregates reconciliation progress over the current transaction and
// group collections. Every field is derived; nothing here is stored state.
type Stats struct {
	BankTotal  decimal.Decimal `json:"bankTotal"`
	GLTotal    decimal.Decimal `json:"glTotal"`
	Difference decimal.Decimal `json:"difference"`

	TotalBankTransactions int `json:"totalBankTransactions"`
	TotalGLTransactions   int `json:"totalGLTransactions"`

	UnmatchedBankTransactions int `json:"unmatchedBankTransactions"`
	UnmatchedGLTransactions   int `json:"unmatchedGLTransactions"`
	PotentialBankTransactions int `json:"potentialBankTransactions"`
	PotentialGLTransactions   int `json:"potentialGLTransactions"`
	MatchedBankTransactions   int `json:"matchedBankTransactions"`
	MatchedGLTransactions     int `json:"matchedGLTransactions"`

	UnmatchedBankTotal decimal.Decimal `json:"unmatchedBankTotal"`
	UnmatchedGLTotal   decimal.Decimal `json:"unmatchedGLTotal"`

	// MatchGroups counts active (non-rejected) groups.
	MatchGroups int `json:"matchGroups"`

	// MatchedRate is the percentage of bank transactions in matched
	// status, 0 when there are no bank transactions.
	MatchedRate float64 `json:"matchedRate"`
}

// ComputeStats derives reconciliation totals, per-status counts, and the
// match rate from the current collections.
func ComputeStats(bank []models.BankTransaction, gl []models.GLTransaction, groups []models.MatchGroup) Stats {
	stats := Stats{
		BankTotal:             decimal.Zero,
		GLTotal:               decimal.Zero,
		UnmatchedBankTotal:    decimal.Zero,
		UnmatchedGLTotal:      decimal.Zero,
		TotalBankTransactions: len(bank),
		TotalGLTransactions:   len(gl),
	}

	for _, tx := range bank {
		stats.BankTotal = stats.BankTotal.Add(tx.Amount)
		switch tx.MatchStatus {
		case models.StatusUnmatched:
			stats.UnmatchedBankTransactions++
			stats.UnmatchedBankTotal = stats.UnmatchedBankTotal.Add(tx.Amount)
		case models.StatusPotential:
			stats.PotentialBankTransactions++
		case models.StatusMatched:
			stats.MatchedBankTransactions++
		}
	}

	for _, tx := range gl {
		stats.GLTotal = stats.GLTotal.Add(tx.Amount)
		switch tx.MatchStatus {
		case models.StatusUnmatched:
			stats.UnmatchedGLTransactions++
			stats.UnmatchedGLTotal = stats.UnmatchedGLTotal.Add(tx.Amount)
		case models.StatusPotential:
			stats.PotentialGLTransactions++
		case models.StatusMatched:
			stats.MatchedGLTransactions++
		}
	}

	stats.Difference = stats.BankTotal.Sub(stats.GLTotal)

	for _, group := range groups {
		if group.Status.IsActive() {
			stats.MatchGroups++
		}
	}

	if len(bank) > 0 {
		stats.MatchedRate = float64(stats.MatchedBankTransactions) / float64(len(bank)) * 100
	}

	return stats
}
