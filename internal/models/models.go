// Package models defines the transaction and match group records shared by
// the matching engine, the workspace, and the collaborating ingestion and
// reporting layers.
//
// Amounts are decimal values fixed to cent precision; dates carry day
// precision only (midnight UTC). All collections are value slices so that
// engine operations can copy and return them without aliasing caller state.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus reflects a transaction's relationship to the active match
// groups. It is derived state: the match applier recomputes it from group
// membership and is the only writer.
type MatchStatus string

const (
	// StatusUnmatched means no active group references the transaction.
	StatusUnmatched MatchStatus = "unmatched"
	// StatusPotential means the transaction belongs to an auto or manual
	// group that has not been confirmed yet.
	StatusPotential MatchStatus = "potential"
	// StatusMatched means the transaction belongs to a confirmed group.
	StatusMatched MatchStatus = "matched"
)

// String returns the string representation of MatchStatus
func (s MatchStatus) String() string {
	return string(s)
}

// IsValid checks if the match status is valid
func (s MatchStatus) IsValid() bool {
	return s == StatusUnmatched || s == StatusPotential || s == StatusMatched
}

// GroupStatus is the lifecycle state of a match group.
type GroupStatus string

const (
	// GroupAuto marks a machine-proposed group awaiting review.
	GroupAuto GroupStatus = "auto"
	// GroupManual marks a user-assembled or user-edited group.
	GroupManual GroupStatus = "manual"
	// GroupConfirmed is the terminal positive state.
	GroupConfirmed GroupStatus = "confirmed"
	// GroupRejected is the terminal negative state; rejected groups are
	// removed from the active collection entirely.
	GroupRejected GroupStatus = "rejected"
)

// String returns the string representation of GroupStatus
func (s GroupStatus) String() string {
	return string(s)
}

// IsValid checks if the group status is valid
func (s GroupStatus) IsValid() bool {
	switch s {
	case GroupAuto, GroupManual, GroupConfirmed, GroupRejected:
		return true
	}
	return false
}

// IsActive reports whether a group in this state participates in matching.
func (s GroupStatus) IsActive() bool {
	return s != GroupRejected
}

// BankTransaction is a record from the bank statement feed.
type BankTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	MatchStatus MatchStatus     `json:"matchStatus"`
	MatchGroup  string          `json:"matchGroup,omitempty"`

	// UniqueKey is the per-record uniqueness key derived from date and
	// amount at ingestion.
	UniqueKey   string `json:"uniqueIdentifier"`
	BankAccount string `json:"bankAccount,omitempty"`
	CheckNumber string `json:"checkNumber,omitempty"`
}

// GLTransaction is a record from the general-ledger feed.
type GLTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	MatchStatus MatchStatus     `json:"matchStatus"`
	MatchGroup  string          `json:"matchGroup,omitempty"`

	GLAccount  string `json:"glAccount,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Department string `json:"department,omitempty"`
	Class      string `json:"class,omitempty"`
}

// MatchGroup associates one or more bank transactions with one or more GL
// transactions believed to represent the same real-world event.
type MatchGroup struct {
	ID                 string          `json:"id"`
	BankTransactionIDs []string        `json:"bankTransactionIds"`
	GLTransactionIDs   []string        `json:"glTransactionIds"`
	Status             GroupStatus     `json:"status"`
	BankTotal          decimal.Decimal `json:"bankTotal"`
	GLTotal            decimal.Decimal `json:"glTotal"`
	IsBalanced         bool            `json:"isBalanced"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy of the group, including its id slices.
func (g MatchGroup) Clone() MatchGroup {
	out := g
	out.BankTransactionIDs = append([]string(nil), g.BankTransactionIDs...)
	out.GLTransactionIDs = append([]string(nil), g.GLTransactionIDs...)
	return out
}

// String returns a string representation of the MatchGroup
func (g MatchGroup) String() string {
	return fmt.Sprintf("MatchGroup{ID: %s, Status: %s, Bank: %d, GL: %d, BankTotal: %s, GLTotal: %s, Balanced: %t}",
		g.ID, g.Status, len(g.BankTransactionIDs), len(g.GLTransactionIDs),
		g.BankTotal.StringFixed(2), g.GLTotal.StringFixed(2), g.IsBalanced)
}

// CentTolerance is the one-cent threshold used everywhere two money totals
// are compared for balance.
var CentTolerance = decimal.New(1, -2)

// WithinCentTolerance reports whether |a - b| < 0.01.
func WithinCentTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(CentTolerance)
}

// AmountKey returns the amount rounded to cent precision as a string,
// the bucketing key used by the exact matcher.
func AmountKey(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Validate performs basic validation on a BankTransaction
func (t *BankTransaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("bank transaction id cannot be empty")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("bank transaction date cannot be zero")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("bank transaction description cannot be empty")
	}
	return nil
}

// Validate performs basic validation on a GLTransaction
func (t *GLTransaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("gl transaction id cannot be empty")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("gl transaction date cannot be zero")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("gl transaction description cannot be empty")
	}
	return nil
}

// Validate performs basic validation on the MatchGroup
func (g *MatchGroup) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("match group id cannot be empty")
	}
	if len(g.BankTransactionIDs) == 0 {
		return fmt.Errorf("match group must reference at least one bank transaction")
	}
	if len(g.GLTransactionIDs) == 0 {
		return fmt.Errorf("match group must reference at least one gl transaction")
	}
	if !g.Status.IsValid() {
		return fmt.Errorf("invalid match group status: %s", g.Status)
	}
	return nil
}

// Day truncates a time to day precision at midnight UTC. Ingestion applies
// this once; matching relies on it.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute difference between two dates in whole
// calendar days.
func DaysBetween(a, b time.Time) int {
	diff := Day(a).Sub(Day(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// WithinDays reports whether two dates are at most toleranceDays apart.
func WithinDays(a, b time.Time, toleranceDays int) bool {
	return DaysBetween(a, b) <= toleranceDays
}

// BankUniqueKey builds the ingestion-time uniqueness key for a bank record
// from its date and cent-rounded amount.
func BankUniqueKey(date time.Time, amount decimal.Decimal) string {
	return fmt.Sprintf("%s-%s", Day(date).Format("2006-01-02"), amount.StringFixed(2))
}

// ParseAmount parses a decimal amount from free-form statement text. It
// strips currency symbols and thousand separators and honors the
// parenthesized-negative convention used by accounting exports.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, symbol := range []string{"$", "£", "€", ","} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': %w", s, err)
	}

	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseDate attempts to parse a calendar date from string using the formats
// commonly found in bank and GL exports. The result is truncated to day
// precision.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date string cannot be empty")
	}

	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"01-02-2006",
		"2006/01/02",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
		"January 2, 2006",
	}

	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return Day(t), nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, lastErr)
}
