package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/critterquest/internal/errors"
)

func TestWrapKeepsCode(t *testing.T) {
	base := errors.NotFoundf("monster %q not found", "ghost")
	wrapped := errors.Wrap(base, "failed to build enemy")

	assert.True(t, errors.IsNotFound(wrapped))
	assert.True(t, stderrors.Is(wrapped, errors.New(errors.CodeNotFound, "")))
	assert.Equal(t, base, stderrors.Unwrap(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to build enemy")
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := errors.Wrapf(stderrors.New("disk on fire"), "loading %s", "monsters.json")

	assert.Equal(t, errors.CodeInternal, errors.GetCode(wrapped))
	assert.Equal(t, "INTERNAL: loading monsters.json: disk on fire", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestValidationBuilder(t *testing.T) {
	assert.NoError(t, errors.NewValidationBuilder().Build())

	err := errors.NewValidationBuilder().
		RequiredField("Source").
		Fieldf("EnemyTurnDelay", "must not be negative, got %d", -1).
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t,
		"INVALID_ARGUMENT: validation failed: EnemyTurnDelay: must not be negative, got -1; Source: is required",
		err.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := errors.Newf(errors.CodeInternal, "battle %d did not finish", 3)

	assert.Equal(t, "INTERNAL: battle 3 did not finish", err.Error())
	assert.Equal(t, "INTERNAL", errors.GetCode(err).String())
}
