package exception

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNotFoundError(t *testing.T) {
	err := NewFormatNotFoundError("blink")
	assert.Equal(t, "FORMAT_NOT_FOUND", err.Code)
	assert.Equal(t, "blink", err.Name)
	assert.Contains(t, err.Error(), "'blink'")

	var target *FormatNotFoundError
	require.True(t, errors.As(error(err), &target))
}

func TestInvalidDescriptorError_UnwrapsCause(t *testing.T) {
	cause := errors.New("bad selector")
	err := NewInvalidDescriptorError("align", "selector does not compile", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad selector")
}

func TestConfigAndImportErrors(t *testing.T) {
	cause := errors.New("unexpected EOF")

	configErr := NewConfigError("settings could not be parsed", cause)
	assert.Equal(t, "CONFIG_ERROR", configErr.Code)
	assert.ErrorIs(t, configErr, cause)

	importErr := NewImportError("html could not be parsed", cause)
	assert.Equal(t, "IMPORT_ERROR", importErr.Code)
	assert.ErrorIs(t, importErr, cause)
}
