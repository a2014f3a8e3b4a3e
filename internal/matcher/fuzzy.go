package matcher

import (
	"sort"

	"github.com/pattydubb/venice-recked/internal/models"
)

// scoredCandidate pairs a GL position with its description distance.
type scoredCandidate struct {
	pos   int
	score float64
}

// FindPotentialMatches searches the currently unmatched transactions for
// fuzzy 1:1 pairings, combining amount tolerance, date proximity, and
// description similarity. Proposed groups carry status auto.
//
// For each unmatched bank transaction, in input order:
//
//  1. Candidates are the unmatched GL transactions whose amount differs from
//     the bank amount by less than the configured percentage of its
//     magnitude.
//  2. Candidates within the date window are preferred; when none are, the
//     full amount-tolerance set is kept.
//  3. The bank description is scored against every unmatched GL description
//     and the ranked results (those under the threshold) are intersected
//     with the candidate set; the best-scoring survivor wins.
//
// GL statuses are not updated within a single invocation, so two bank
// transactions can claim the same GL transaction in one pass; the applier
// resolves the overlap by applying groups in order. This mirrors the
// workspace's review flow, where such collisions surface to the user.
func (e *Engine) FindPotentialMatches(bank []models.BankTransaction, gl []models.GLTransaction) []models.MatchGroup {
	var unmatchedBank []models.BankTransaction
	for _, tx := range bank {
		if tx.MatchStatus == models.StatusUnmatched {
			unmatchedBank = append(unmatchedBank, tx)
		}
	}

	var unmatchedGL []models.GLTransaction
	for _, tx := range gl {
		if tx.MatchStatus == models.StatusUnmatched {
			unmatchedGL = append(unmatchedGL, tx)
		}
	}

	if len(unmatchedBank) == 0 || len(unmatchedGL) == 0 {
		return nil
	}

	var groups []models.MatchGroup
	for _, bankTx := range unmatchedBank {
		if bankTx.Amount.IsZero() {
			// Relative tolerance is undefined for a zero amount.
			continue
		}

		candidates := e.amountCandidates(bankTx, unmatchedGL)
		if len(candidates) == 0 {
			continue
		}

		working := e.dateCandidates(bankTx, unmatchedGL, candidates)
		if len(working) == 0 {
			working = candidates
		}

		best, ok := e.bestDescriptionMatch(bankTx, unmatchedGL, working)
		if !ok {
			continue
		}

		glTx := unmatchedGL[best]
		groups = append(groups, e.newAutoGroup(
			[]string{bankTx.ID},
			[]string{glTx.ID},
			bankTx.Amount,
			glTx.Amount,
		))
	}

	return groups
}

// amountCandidates returns the positions of GL transactions whose amount is
// within the relative tolerance of the bank amount.
func (e *Engine) amountCandidates(bankTx models.BankTransaction, gl []models.GLTransaction) map[int]bool {
	tolerance := e.config.AmountTolerancePercent / 100.0
	magnitude := bankTx.Amount.Abs()

	candidates := make(map[int]bool)
	for i, glTx := range gl {
		diff := bankTx.Amount.Sub(glTx.Amount).Abs()
		if diff.Div(magnitude).InexactFloat64() < tolerance {
			candidates[i] = true
		}
	}
	return candidates
}

// dateCandidates narrows an amount-candidate set to entries within the date
// window. An empty result signals the caller to fall back to the full set.
func (e *Engine) dateCandidates(bankTx models.BankTransaction, gl []models.GLTransaction, candidates map[int]bool) map[int]bool {
	narrowed := make(map[int]bool)
	for pos := range candidates {
		if models.WithinDays(bankTx.Date, gl[pos].Date, e.config.DateToleranceDays) {
			narrowed[pos] = true
		}
	}
	return narrowed
}

// bestDescriptionMatch scores the bank description against every unmatched
// GL description, keeps results under the threshold, and returns the
// best-scoring position that is also in the working candidate set.
func (e *Engine) bestDescriptionMatch(bankTx models.BankTransaction, gl []models.GLTransaction, working map[int]bool) (int, bool) {
	var ranked []scoredCandidate
	for i, glTx := range gl {
		score := descriptionScore(bankTx.Description, glTx.Description)
		if score <= e.config.DescriptionThreshold {
			ranked = append(ranked, scoredCandidate{pos: i, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	for _, candidate := range ranked {
		if working[candidate.pos] {
			return candidate.pos, true
		}
	}
	return 0, false
}
