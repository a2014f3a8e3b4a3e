package matcher

import (
	"github.com/pattydubb/venice-recked/internal/models"
)

// ApplyMatchGroups projects a list of match groups onto the transaction
// collections, returning new collections in which every referenced
// transaction carries the derived match status (matched for confirmed
// groups, potential otherwise) and a back-reference to its group.
// Transactions no group references pass through unchanged.
//
// The inputs are never mutated and the outputs share no record identity
// with them, so reapplying the same groups to the function's own output is
// a no-op. Group objects are read only. Rejected groups are the caller's
// responsibility to withhold; rejection resets members instead of applying.
func ApplyMatchGroups(bank []models.BankTransaction, gl []models.GLTransaction, groups []models.MatchGroup) ([]models.BankTransaction, []models.GLTransaction) {
	outBank := append([]models.BankTransaction(nil), bank...)
	outGL := append([]models.GLTransaction(nil), gl...)

	bankByID := make(map[string]int, len(outBank))
	for i, tx := range outBank {
		bankByID[tx.ID] = i
	}
	glByID := make(map[string]int, len(outGL))
	for i, tx := range outGL {
		glByID[tx.ID] = i
	}

	for _, group := range groups {
		status := models.StatusPotential
		if group.Status == models.GroupConfirmed {
			status = models.StatusMatched
		}

		for _, id := range group.BankTransactionIDs {
			if i, ok := bankByID[id]; ok {
				outBank[i].MatchStatus = status
				outBank[i].MatchGroup = group.ID
			}
		}
		for _, id := range group.GLTransactionIDs {
			if i, ok := glByID[id]; ok {
				outGL[i].MatchStatus = status
				outGL[i].MatchGroup = group.ID
			}
		}
	}

	return outBank, outGL
}

// ResetMatchGroups clears the match state of every transaction the given
// groups reference, returning new collections. Used when a group is
// rejected or edited away: its members become unmatched and available to
// subsequent matching runs.
func ResetMatchGroups(bank []models.BankTransaction, gl []models.GLTransaction, groups []models.MatchGroup) ([]models.BankTransaction, []models.GLTransaction) {
	bankIDs := make(map[string]bool)
	glIDs := make(map[string]bool)
	for _, group := range groups {
		for _, id := range group.BankTransactionIDs {
			bankIDs[id] = true
		}
		for _, id := range group.GLTransactionIDs {
			glIDs[id] = true
		}
	}

	outBank := append([]models.BankTransaction(nil), bank...)
	for i := range outBank {
		if bankIDs[outBank[i].ID] {
			outBank[i].MatchStatus = models.StatusUnmatched
			outBank[i].MatchGroup = ""
		}
	}

	outGL := append([]models.GLTransaction(nil), gl...)
	for i := range outGL {
		if glIDs[outGL[i].ID] {
			outGL[i].MatchStatus = models.StatusUnmatched
			outGL[i].MatchGroup = ""
		}
	}

	return outBank, outGL
}
