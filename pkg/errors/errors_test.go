package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCategoryAndCode(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "file not found")

	assert.Equal(t, CategoryFile, err.Category)
	assert.Equal(t, CodeFileNotFound, err.Code)
	assert.Equal(t, "file not found", err.Error())
	assert.NotEmpty(t, err.StackTrace)
}

func TestErrorIncludesSuggestion(t *testing.T) {
	err := New(CategoryParse, CodeInvalidFormat, "bad csv").
		WithSuggestion("check the delimiter")

	assert.Equal(t, "bad csv (suggestion: check the delimiter)", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := Wrap(cause, CategoryInternal, CodeUnexpectedError, "operation failed")

	require.NotNil(t, err)
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CategoryInternal, CodeUnexpectedError, "nope"))
}

func TestWithContext(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "missing").
		WithContext("file_path", "/tmp/data.csv").
		WithContext("attempt", 2)

	assert.Equal(t, "/tmp/data.csv", err.Context["file_path"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestGroupNotFound(t *testing.T) {
	err := GroupNotFound("g-42")

	assert.True(t, IsGroupNotFound(err))
	assert.False(t, IsInvalidSelection(err))
	assert.Equal(t, CategorySelection, err.Category)
	assert.Contains(t, err.Message, "g-42")
	assert.Equal(t, "g-42", err.Context["group_id"])
}

func TestInvalidSelection(t *testing.T) {
	err := InvalidSelection("no bank transactions selected")

	assert.True(t, IsInvalidSelection(err))
	assert.Contains(t, err.Message, "no bank transactions selected")
}

func TestUnknownTransaction(t *testing.T) {
	err := UnknownTransaction("bank", "tx-7")

	assert.True(t, HasCode(err, CodeUnknownTransaction))
	assert.Contains(t, err.Message, "bank")
	assert.Contains(t, err.Message, "tx-7")
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/tmp/missing.csv", nil)

	assert.Equal(t, CategoryFile, err.Category)
	assert.Contains(t, err.Message, "/tmp/missing.csv")
	assert.NotEmpty(t, err.Suggestion)
}

func TestParseError(t *testing.T) {
	err := ParseError(CodeMissingColumn, "data.csv", 1, "Amount", "", nil)

	assert.Equal(t, CategoryParse, err.Category)
	assert.Contains(t, err.Message, "Amount")
	assert.Contains(t, err.Message, "data.csv")
	assert.Equal(t, 1, err.Context["line"])
}

func TestValidationError(t *testing.T) {
	err := ValidationError(CodeInvalidAmount, "amount", "abc", nil)

	assert.Equal(t, CategoryValidation, err.Category)
	assert.Contains(t, err.Message, "amount")
}

func TestConfigurationError(t *testing.T) {
	err := ConfigurationError("bank_mapping.date", "", nil)

	assert.Equal(t, CategoryConfiguration, err.Category)
	assert.Equal(t, CodeInvalidConfig, err.Code)
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := GroupNotFound("g-1")
	wrapped := fmt.Errorf("lifecycle operation failed: %w", inner)

	assert.True(t, HasCode(wrapped, CodeGroupNotFound))
	assert.True(t, IsGroupNotFound(wrapped))

	extracted, ok := AsReconcileError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeGroupNotFound, extracted.Code)
}

func TestHasCodeOnForeignError(t *testing.T) {
	assert.False(t, HasCode(stderrors.New("plain"), CodeGroupNotFound))
	assert.False(t, IsReconcileError(stderrors.New("plain")))
	assert.True(t, IsReconcileError(New(CategoryInternal, CodeUnexpectedError, "x")))
}
