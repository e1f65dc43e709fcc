package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/quokkadb/quokka/internal/errors"
)

func TestEvalError_Formatting(t *testing.T) {
	err := qerrors.NewUnknownFunctionError("frobnicate")
	assert.Equal(t, "Resolve failed for function 'frobnicate': unknown function", err.Error())

	arity := qerrors.NewArityError("pow", 2, 3)
	assert.Equal(t, "Execute failed for function 'pow': expected 2 arguments, got 3", arity.Error())

	internal := qerrors.NewInternalError("Execute", fmt.Errorf("boom"))
	assert.Equal(t, "Execute failed: internal error occurred", internal.Error())
}

func TestEvalError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("allocator exhausted")
	err := qerrors.NewInternalError("Execute", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestEvalError_Is(t *testing.T) {
	a := qerrors.NewUnknownFunctionError("sin")
	b := qerrors.NewUnknownFunctionError("sin")
	c := qerrors.NewUnknownFunctionError("cos")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
	assert.False(t, stderrors.Is(a, fmt.Errorf("unknown function")))
}

func TestEvalError_Constructors(t *testing.T) {
	dup := qerrors.NewDuplicateFunctionError("abs")
	assert.Equal(t, "Register", dup.Op)
	assert.Equal(t, "abs", dup.Function)

	unsupported := qerrors.NewUnsupportedTypeError("pow", "Decimal128")
	assert.Contains(t, unsupported.Error(), "Decimal128")

	invalid := qerrors.NewInvalidInputError("log", "nil argument column")
	assert.Contains(t, invalid.Error(), "nil argument column")
}
