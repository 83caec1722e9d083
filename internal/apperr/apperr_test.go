package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	base := Conflict(CodeAlreadyClaimed, "restaurant %d already claimed", 55)
	wrapped := fmt.Errorf("claim: %w", base)

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, CodeAlreadyClaimed, CodeOf(wrapped))
	assert.True(t, Is(wrapped, KindConflict))
	assert.Equal(t, "restaurant 55 already claimed", base.Error())
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Empty(t, CodeOf(err))
	assert.False(t, Is(nil, KindNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unique violation")
	err := Conflict(CodeReviewExists, "already reviewed").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "already reviewed: unique violation", err.Error())
	assert.Equal(t, "conflict", KindConflict.String())
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		City    string `json:"city" validate:"required"`
		Comment string `json:"comment,omitempty" validate:"max=3"`
	}

	err := ValidateStruct(payload{City: "Austin", Comment: "too long"})
	assert.True(t, Is(err, KindValidation))
	assert.Equal(t, CodeInvalidInput, CodeOf(err))
	assert.Contains(t, err.Error(), "comment failed on the 'max' rule")

	err = ValidateStruct(&payload{})
	assert.Contains(t, err.Error(), "city failed on the 'required' rule")

	assert.NoError(t, ValidateStruct(payload{City: "Austin"}))
}
