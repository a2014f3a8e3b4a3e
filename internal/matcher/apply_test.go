package matcher

import (
	"testing"

	"github.com/pattydubb/venice-recked/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyFixture() ([]models.BankTransaction, []models.GLTransaction, []models.MatchGroup) {
	bank := []models.BankTransaction{
		bankTx("b1", "2024-01-15", "100.00", "Office supplies"),
		bankTx("b2", "2024-01-16", "250.00", "Software"),
	}
	gl := []models.GLTransaction{
		glTx("gl1", "2024-01-15", "100.00", "Supplies"),
		glTx("gl2", "2024-01-16", "250.00", "Subscription"),
	}
	groups := []models.MatchGroup{
		{
			ID:                 "g1",
			BankTransactionIDs: []string{"b1"},
			GLTransactionIDs:   []string{"gl1"},
			Status:             models.GroupAuto,
		},
	}
	return bank, gl, groups
}

func TestApplyMatchGroupsSetsPotentialStatus(t *testing.T) {
	bank, gl, groups := applyFixture()

	outBank, outGL := ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, models.StatusPotential, outBank[0].MatchStatus)
	assert.Equal(t, "g1", outBank[0].MatchGroup)
	assert.Equal(t, models.StatusPotential, outGL[0].MatchStatus)
	assert.Equal(t, "g1", outGL[0].MatchGroup)
}

func TestApplyMatchGroupsConfirmedBecomesMatched(t *testing.T) {
	bank, gl, groups := applyFixture()
	groups[0].Status = models.GroupConfirmed

	outBank, outGL := ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, models.StatusMatched, outBank[0].MatchStatus)
	assert.Equal(t, models.StatusMatched, outGL[0].MatchStatus)
}

func TestApplyMatchGroupsLeavesUnreferencedAlone(t *testing.T) {
	bank, gl, groups := applyFixture()

	outBank, outGL := ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, models.StatusUnmatched, outBank[1].MatchStatus)
	assert.Empty(t, outBank[1].MatchGroup)
	assert.Equal(t, models.StatusUnmatched, outGL[1].MatchStatus)
}

func TestApplyMatchGroupsDoesNotMutateInputs(t *testing.T) {
	bank, gl, groups := applyFixture()

	ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, models.StatusUnmatched, bank[0].MatchStatus)
	assert.Empty(t, bank[0].MatchGroup)
	assert.Equal(t, models.StatusUnmatched, gl[0].MatchStatus)
}

func TestApplyMatchGroupsIsIdempotent(t *testing.T) {
	bank, gl, groups := applyFixture()

	once1, once2 := ApplyMatchGroups(bank, gl, groups)
	twice1, twice2 := ApplyMatchGroups(once1, once2, groups)

	assert.Equal(t, once1, twice1)
	assert.Equal(t, once2, twice2)
}

func TestApplyMatchGroupsSkipsUnknownIDs(t *testing.T) {
	bank, gl, _ := applyFixture()
	groups := []models.MatchGroup{
		{
			ID:                 "g1",
			BankTransactionIDs: []string{"nope"},
			GLTransactionIDs:   []string{"also-nope"},
			Status:             models.GroupAuto,
		},
	}

	outBank, outGL := ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, bank, outBank)
	assert.Equal(t, gl, outGL)
}

func TestApplyMatchGroupsLaterGroupWins(t *testing.T) {
	bank, gl, _ := applyFixture()

	// Both groups claim gl1; application order decides the surviving
	// back-reference.
	groups := []models.MatchGroup{
		{ID: "g1", BankTransactionIDs: []string{"b1"}, GLTransactionIDs: []string{"gl1"}, Status: models.GroupAuto},
		{ID: "g2", BankTransactionIDs: []string{"b2"}, GLTransactionIDs: []string{"gl1"}, Status: models.GroupAuto},
	}

	_, outGL := ApplyMatchGroups(bank, gl, groups)

	assert.Equal(t, "g2", outGL[0].MatchGroup)
}

func TestResetMatchGroupsClearsMembers(t *testing.T) {
	bank, gl, groups := applyFixture()
	appliedBank, appliedGL := ApplyMatchGroups(bank, gl, groups)

	outBank, outGL := ResetMatchGroups(appliedBank, appliedGL, groups)

	assert.Equal(t, models.StatusUnmatched, outBank[0].MatchStatus)
	assert.Empty(t, outBank[0].MatchGroup)
	assert.Equal(t, models.StatusUnmatched, outGL[0].MatchStatus)
	assert.Empty(t, outGL[0].MatchGroup)

	// Apply then reset round-trips to the original collections.
	assert.Equal(t, bank, outBank)
	assert.Equal(t, gl, outGL)
}

func TestResetMatchGroupsDoesNotMutateInputs(t *testing.T) {
	bank, gl, groups := applyFixture()
	appliedBank, appliedGL := ApplyMatchGroups(bank, gl, groups)

	ResetMatchGroups(appliedBank, appliedGL, groups)

	require.Equal(t, models.StatusPotential, appliedBank[0].MatchStatus)
	require.Equal(t, models.StatusPotential, appliedGL[0].MatchStatus)
}
