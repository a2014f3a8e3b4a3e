// Package workspace owns the mutable reconciliation state: the bank and GL
// transaction collections, the active match groups, and the project
// bookkeeping around them. It drives the pure matching primitives and
// implements the match group lifecycle (create, edit, confirm, reject).
//
// The workspace holds the only mutable copy of the collections. Every
// accessor returns snapshots, and every transition routes through the
// matcher package's apply/reset functions, so transaction match status is
// always a pure function of group membership.
package workspace

import (
	"time"

	"github.com/google/uuid"
	"github.com/pattydubb/venice-recked/internal/matcher"
	"github.com/pattydubb/venice-recked/internal/models"
	errs "github.com/pattydubb/venice-recked/pkg/errors"
	"github.com/pattydubb/venice-recked/pkg/logger"
	"github.com/shopspring/decimal"
)

// Workspace is the caller-owned store the matching engine operates against.
type Workspace struct {
	engine *matcher.Engine
	log    logger.Logger

	project *Project

	bank   []models.BankTransaction
	gl     []models.GLTransaction
	groups []models.MatchGroup

	// exactIDs records which active groups came out of the exact matcher.
	// Editing or rejecting a group clears its entry.
	exactIDs map[string]bool

	now   func() time.Time
	newID func() string
}

// New creates an empty workspace backed by the given engine. A nil engine
// gets the default configuration.
func New(engine *matcher.Engine) *Workspace {
	if engine == nil {
		engine = matcher.NewEngine(nil)
	}
	return &Workspace{
		engine:   engine,
		log:      logger.GetGlobalLogger().WithComponent("workspace"),
		exactIDs: make(map[string]bool),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock overrides the workspace time source. Returns the workspace for
// chaining.
func (w *Workspace) WithClock(now func() time.Time) *Workspace {
	w.now = now
	return w
}

// WithIDGenerator overrides the workspace group id source. Returns the
// workspace for chaining.
func (w *Workspace) WithIDGenerator(newID func() string) *Workspace {
	w.newID = newID
	return w
}

// AddBankTransactions appends ingested bank transactions to the workspace.
func (w *Workspace) AddBankTransactions(transactions []models.BankTransaction) {
	w.bank = append(w.bank, transactions...)
	if w.project != nil {
		w.project.BankTransactionCount = len(w.bank)
		w.project.BankFileCount++
		w.project.LastActivity = w.now()
	}
	w.log.WithFields(logger.Fields{
		"added": len(transactions),
		"total": len(w.bank),
	}).Debug("Added bank transactions")
}

// AddGLTransactions appends ingested GL transactions to the workspace.
func (w *Workspace) AddGLTransactions(transactions []models.GLTransaction) {
	w.gl = append(w.gl, transactions...)
	if w.project != nil {
		w.project.GLTransactionCount = len(w.gl)
		w.project.GLFileCount++
		w.project.LastActivity = w.now()
	}
	w.log.WithFields(logger.Fields{
		"added": len(transactions),
		"total": len(w.gl),
	}).Debug("Added GL transactions")
}

// RunAutomaticMatching finds exact matches, applies them, finds fuzzy
// matches over the residual unmatched set, applies those, and accumulates
// the proposed groups. It is safe to re-run at any point: only currently
// unmatched transactions participate.
func (w *Workspace) RunAutomaticMatching() matcher.Stats {
	exact := w.engine.FindExactMatches(w.bank, w.gl)
	w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, exact)

	potential := w.engine.FindPotentialMatches(w.bank, w.gl)
	w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, potential)

	w.groups = append(w.groups, exact...)
	w.groups = append(w.groups, potential...)
	for _, group := range exact {
		w.exactIDs[group.ID] = true
	}

	w.log.WithFields(logger.Fields{
		"exact_groups":     len(exact),
		"potential_groups": len(potential),
		"total_groups":     len(w.groups),
	}).Info("Automatic matching complete")

	w.touchProject()
	return w.Stats()
}

// CreateGroup assembles a manual match group from the selected transaction
// ids, applies it, and returns the new group. Both sides must be non-empty
// and every id must exist in the loaded collections.
func (w *Workspace) CreateGroup(bankIDs, glIDs []string) (models.MatchGroup, error) {
	if len(bankIDs) == 0 {
		return models.MatchGroup{}, errs.InvalidSelection("match group needs at least one bank transaction")
	}
	if len(glIDs) == 0 {
		return models.MatchGroup{}, errs.InvalidSelection("match group needs at least one GL transaction")
	}

	bankTotal, glTotal, err := w.sumSelection(bankIDs, glIDs)
	if err != nil {
		return models.MatchGroup{}, err
	}

	now := w.now()
	group := models.MatchGroup{
		ID:                 w.newID(),
		BankTransactionIDs: append([]string(nil), bankIDs...),
		GLTransactionIDs:   append([]string(nil), glIDs...),
		Status:             models.GroupManual,
		BankTotal:          bankTotal,
		GLTotal:            glTotal,
		IsBalanced:         models.WithinCentTolerance(bankTotal, glTotal),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	w.groups = append(w.groups, group)
	w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, []models.MatchGroup{group})

	w.log.WithFields(logger.Fields{
		"group_id": group.ID,
		"balanced": group.IsBalanced,
	}).Info("Created manual match group")

	w.touchProject()
	return group.Clone(), nil
}

// EditGroup replaces a group's membership in place: the old members are
// reset to unmatched, totals are recomputed from the new selection, the
// status becomes manual, and the group is reapplied. The group keeps its id
// and creation time.
func (w *Workspace) EditGroup(groupID string, bankIDs, glIDs []string) (models.MatchGroup, error) {
	pos, ok := w.findGroup(groupID)
	if !ok {
		return models.MatchGroup{}, errs.GroupNotFound(groupID)
	}
	if len(bankIDs) == 0 {
		return models.MatchGroup{}, errs.InvalidSelection("match group needs at least one bank transaction")
	}
	if len(glIDs) == 0 {
		return models.MatchGroup{}, errs.InvalidSelection("match group needs at least one GL transaction")
	}

	bankTotal, glTotal, err := w.sumSelection(bankIDs, glIDs)
	if err != nil {
		return models.MatchGroup{}, err
	}

	old := w.groups[pos]
	w.bank, w.gl = matcher.ResetMatchGroups(w.bank, w.gl, []models.MatchGroup{old})

	updated := old
	updated.BankTransactionIDs = append([]string(nil), bankIDs...)
	updated.GLTransactionIDs = append([]string(nil), glIDs...)
	updated.Status = models.GroupManual
	updated.BankTotal = bankTotal
	updated.GLTotal = glTotal
	updated.IsBalanced = models.WithinCentTolerance(bankTotal, glTotal)
	updated.UpdatedAt = w.now()

	w.groups[pos] = updated
	delete(w.exactIDs, groupID)
	w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, []models.MatchGroup{updated})

	w.log.WithField("group_id", groupID).Info("Edited match group")

	w.touchProject()
	return updated.Clone(), nil
}

// ConfirmGroup marks a group confirmed and reapplies it, moving its members
// from potential to matched. Membership is unchanged.
func (w *Workspace) ConfirmGroup(groupID string) error {
	pos, ok := w.findGroup(groupID)
	if !ok {
		return errs.GroupNotFound(groupID)
	}

	w.groups[pos].Status = models.GroupConfirmed
	w.groups[pos].UpdatedAt = w.now()
	w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, []models.MatchGroup{w.groups[pos]})

	w.log.WithField("group_id", groupID).Info("Confirmed match group")

	w.touchProject()
	return nil
}

// RejectGroup resets every member transaction to unmatched and removes the
// group from the active collection. No tombstone is kept; the members are
// immediately available to new matches, manual or automatic.
func (w *Workspace) RejectGroup(groupID string) error {
	pos, ok := w.findGroup(groupID)
	if !ok {
		return errs.GroupNotFound(groupID)
	}

	rejected := w.groups[pos]
	w.bank, w.gl = matcher.ResetMatchGroups(w.bank, w.gl, []models.MatchGroup{rejected})
	w.groups = append(w.groups[:pos], w.groups[pos+1:]...)
	delete(w.exactIDs, groupID)

	w.log.WithField("group_id", groupID).Info("Rejected match group")

	w.touchProject()
	return nil
}

// ConfirmExactMatches confirms every balanced, unreviewed group the exact
// matcher produced and returns how many were confirmed. Fuzzy proposals are
// left for review even when their totals happen to balance.
func (w *Workspace) ConfirmExactMatches() int {
	confirmed := 0
	for i := range w.groups {
		if !w.exactIDs[w.groups[i].ID] || w.groups[i].Status != models.GroupAuto || !w.groups[i].IsBalanced {
			continue
		}
		w.groups[i].Status = models.GroupConfirmed
		w.groups[i].UpdatedAt = w.now()
		w.bank, w.gl = matcher.ApplyMatchGroups(w.bank, w.gl, []models.MatchGroup{w.groups[i]})
		confirmed++
	}

	if confirmed > 0 {
		w.log.WithField("confirmed", confirmed).Info("Confirmed exact match groups")
		w.touchProject()
	}
	return confirmed
}

// SetTransactionNote attaches a free-text note to the transaction with the
// given id on either side. Notes never affect matching.
func (w *Workspace) SetTransactionNote(id, note string) error {
	for i := range w.bank {
		if w.bank[i].ID == id {
			w.bank[i].Notes = note
			return nil
		}
	}
	for i := range w.gl {
		if w.gl[i].ID == id {
			w.gl[i].Notes = note
			return nil
		}
	}
	return errs.UnknownTransaction("any", id)
}

// Stats derives the current reconciliation statistics.
func (w *Workspace) Stats() matcher.Stats {
	return matcher.ComputeStats(w.bank, w.gl, w.groups)
}

// BankTransactions returns a snapshot of the bank collection.
func (w *Workspace) BankTransactions() []models.BankTransaction {
	return append([]models.BankTransaction(nil), w.bank...)
}

// GLTransactions returns a snapshot of the GL collection.
func (w *Workspace) GLTransactions() []models.GLTransaction {
	return append([]models.GLTransaction(nil), w.gl...)
}

// MatchGroups returns a snapshot of the active groups.
func (w *Workspace) MatchGroups() []models.MatchGroup {
	out := make([]models.MatchGroup, 0, len(w.groups))
	for _, group := range w.groups {
		out = append(out, group.Clone())
	}
	return out
}

// Group returns a snapshot of a single group by id.
func (w *Workspace) Group(groupID string) (models.MatchGroup, error) {
	pos, ok := w.findGroup(groupID)
	if !ok {
		return models.MatchGroup{}, errs.GroupNotFound(groupID)
	}
	return w.groups[pos].Clone(), nil
}

// Reset clears all transactions and groups, keeping the engine and project.
func (w *Workspace) Reset() {
	w.bank = nil
	w.gl = nil
	w.groups = nil
	w.exactIDs = make(map[string]bool)
	w.log.Info("Workspace reset")
}

func (w *Workspace) findGroup(groupID string) (int, bool) {
	for i, group := range w.groups {
		if group.ID == groupID {
			return i, true
		}
	}
	return 0, false
}

// sumSelection totals the selected amounts per side, failing on ids that do
// not reference loaded transactions.
func (w *Workspace) sumSelection(bankIDs, glIDs []string) (decimal.Decimal, decimal.Decimal, error) {
	bankByID := make(map[string]decimal.Decimal, len(w.bank))
	for _, tx := range w.bank {
		bankByID[tx.ID] = tx.Amount
	}
	glByID := make(map[string]decimal.Decimal, len(w.gl))
	for _, tx := range w.gl {
		glByID[tx.ID] = tx.Amount
	}

	bankTotal := decimal.Zero
	for _, id := range bankIDs {
		amount, ok := bankByID[id]
		if !ok {
			return decimal.Zero, decimal.Zero, errs.UnknownTransaction("bank", id)
		}
		bankTotal = bankTotal.Add(amount)
	}

	glTotal := decimal.Zero
	for _, id := range glIDs {
		amount, ok := glByID[id]
		if !ok {
			return decimal.Zero, decimal.Zero, errs.UnknownTransaction("gl", id)
		}
		glTotal = glTotal.Add(amount)
	}

	return bankTotal, glTotal, nil
}
