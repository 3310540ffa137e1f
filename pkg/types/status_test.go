package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode_Values(t *testing.T) {
	assert.Equal(t, int32(1), int32(ErrDKIMNotFound))
	assert.Equal(t, int32(8), int32(ErrLengthMismatch))
	assert.Equal(t, int32(-1), int32(ErrChunkCountMismatch))
	assert.Equal(t, int32(-2), int32(ErrTruncatedChunk))
	assert.Equal(t, int32(-3), int32(ErrInvalidRootSize))
}

func TestStatusCode_Error(t *testing.T) {
	assert.Equal(t, "status 8: modulus/signature length mismatch", ErrLengthMismatch.Error())
	assert.Equal(t, "native status 52", StatusCode(52).Error())
	assert.True(t, ErrInvalidRootSize.IsLocal())
	assert.False(t, StatusCode(52).IsLocal())
	assert.Equal(t, "status -12: required argument is nil", ErrNilArgument.Error())
}

// TestIsLocal_NumericOnly 原生返回与本地码相同的数值时无法区分来源
func TestIsLocal_NumericOnly(t *testing.T) {
	assert.True(t, StatusFromNative(-1).IsLocal())
	assert.Equal(t, ErrChunkCountMismatch, StatusFromNative(-1))
}

func TestStatusFromNative(t *testing.T) {
	assert.Equal(t, StatusCode(7), StatusFromNative(7))
	assert.Equal(t, StatusCode(-100), StatusFromNative(-100))
	assert.Equal(t, StatusCode(7), StatusFromNative(0x1_0000_0007), "按 32 位截断")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, int32(0), CodeOf(nil))
	assert.Equal(t, int32(-3), CodeOf(ErrInvalidRootSize))
	assert.Equal(t, int32(1), CodeOf(fmt.Errorf("wrapped: %w", ErrDKIMNotFound)))
	assert.Equal(t, int32(ErrForeignCallFault), CodeOf(errors.New("other")))
}

func TestIsStatusCode(t *testing.T) {
	code, ok := IsStatusCode(fmt.Errorf("ctx: %w", StatusCode(42)))
	assert.True(t, ok)
	assert.Equal(t, StatusCode(42), code)

	_, ok = IsStatusCode(nil)
	assert.False(t, ok)
	_, ok = IsStatusCode(errors.New("plain"))
	assert.False(t, ok)
}
