package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionScoreIdentical(t *testing.T) {
	assert.Equal(t, 0.0, descriptionScore("Amazon Marketplace", "Amazon Marketplace"))
}

func TestDescriptionScoreCaseAndPunctuationInsensitive(t *testing.T) {
	assert.Equal(t, 0.0, descriptionScore("AMAZON-MARKETPLACE", "amazon marketplace"))
	assert.Equal(t, 0.0, descriptionScore("ACH: Payroll (Jan)", "ach payroll jan"))
}

func TestDescriptionScoreWordOrderInsensitive(t *testing.T) {
	assert.Equal(t, 0.0, descriptionScore("Marketplace Amazon", "Amazon Marketplace"))
}

func TestDescriptionScoreIgnoresBoilerplate(t *testing.T) {
	// Every query token finds a close neighbor even when the target carries
	// extra words.
	score := descriptionScore("Amazon Marketplace", "POS DEBIT Amazon Marketplace 4512")
	assert.Equal(t, 0.0, score)
}

func TestDescriptionScoreUnrelated(t *testing.T) {
	score := descriptionScore("Payroll", "Equipment")
	assert.Greater(t, score, 0.5)
}

func TestDescriptionScoreSmallTypo(t *testing.T) {
	// One character off in a long token stays close to zero.
	score := descriptionScore("Starbucks", "Starbacks")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 0.2)
}

func TestDescriptionScoreEmptyInputs(t *testing.T) {
	assert.Equal(t, 1.0, descriptionScore("", "Amazon"))
	assert.Equal(t, 1.0, descriptionScore("Amazon", ""))
	assert.Equal(t, 1.0, descriptionScore("", ""))
	assert.Equal(t, 1.0, descriptionScore("---", "Amazon"))
}

func TestDescriptionScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"Amazon Marketplace", "Amazon Marketplace"},
		{"Check 1042", "CHECK #1042"},
		{"Wire transfer inbound", "Utility bill"},
		{"a", "zzzzzzzzzz"},
	}
	for _, pair := range pairs {
		score := descriptionScore(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestTokenDistance(t *testing.T) {
	assert.Equal(t, 0.0, tokenDistance("amazon", "amazon"))
	assert.Equal(t, 1.0, tokenDistance("ab", "xy"))
	// One edit across nine characters.
	assert.InDelta(t, 1.0/9.0, tokenDistance("starbucks", "starbacks"), 1e-9)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"amazon", "marketplace", "4512"}, tokenize("Amazon-Marketplace #4512"))
	assert.Empty(t, tokenize("  ---  "))
}
