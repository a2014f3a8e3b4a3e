package matcher

import (
	"github.com/pattydubb/venice-recked/internal/models"
	"github.com/shopspring/decimal"
)

// FindExactMatches groups transactions by identical cent-rounded amount and
// proposes match groups with status auto. Only unmatched entries are
// eligible; everything else is ignored, never mutated.
//
// The search runs in two passes over the bank transactions, in input order:
//
//	Pass A pairs a bank transaction 1:1 with its amount bucket when the
//	bucket holds exactly one unconsumed GL entry. Such groups are balanced
//	by construction.
//
//	Pass B pairs each remaining bank transaction against every unconsumed
//	GL entry sharing its amount key. The group's GL total is the bucket sum,
//	so the balanced flag can come out false; the group is still emitted,
//	flagged unbalanced, for the reviewer to resolve.
//
// Bank transactions whose amount key has no GL collision produce no group.
func (e *Engine) FindExactMatches(bank []models.BankTransaction, gl []models.GLTransaction) []models.MatchGroup {
	idx := newGLAmountIndex(gl)

	var groups []models.MatchGroup
	consumedBank := make(map[string]bool)

	// Pass A: unambiguous 1:1 pairs.
	for _, bankTx := range bank {
		if bankTx.MatchStatus != models.StatusUnmatched {
			continue
		}

		avail := idx.available(models.AmountKey(bankTx.Amount))
		if len(avail) != 1 {
			continue
		}

		glTx := gl[avail[0]]
		groups = append(groups, e.newAutoGroup(
			[]string{bankTx.ID},
			[]string{glTx.ID},
			bankTx.Amount,
			glTx.Amount,
		))
		consumedBank[bankTx.ID] = true
		idx.consume(avail[0])
	}

	// Pass B: one bank transaction against the full remaining bucket.
	for _, bankTx := range bank {
		if bankTx.MatchStatus != models.StatusUnmatched || consumedBank[bankTx.ID] {
			continue
		}

		avail := idx.available(models.AmountKey(bankTx.Amount))
		if len(avail) == 0 {
			continue
		}

		glIDs := make([]string, 0, len(avail))
		glTotal := decimal.Zero
		for _, pos := range avail {
			glIDs = append(glIDs, gl[pos].ID)
			glTotal = glTotal.Add(gl[pos].Amount)
		}

		groups = append(groups, e.newAutoGroup(
			[]string{bankTx.ID},
			glIDs,
			bankTx.Amount,
			glTotal,
		))
		consumedBank[bankTx.ID] = true
		idx.consume(avail...)
	}

	return groups
}

// newAutoGroup builds a machine-proposed group with totals and the balanced
// flag already computed.
func (e *Engine) newAutoGroup(bankIDs, glIDs []string, bankTotal, glTotal decimal.Decimal) models.MatchGroup {
	now := e.now()
	return models.MatchGroup{
		ID:                 e.newID(),
		BankTransactionIDs: bankIDs,
		GLTransactionIDs:   glIDs,
		Status:             models.GroupAuto,
		BankTotal:          bankTotal,
		GLTotal:            glTotal,
		IsBalanced:         models.WithinCentTolerance(bankTotal, glTotal),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
