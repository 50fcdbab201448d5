package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3.0, 0, 10))
	assert.Equal(t, 10.0, Clamp(11.5, 0, 10))
	assert.Equal(t, 4, Clamp(4, 0, 10))
}

func TestBitLength(t *testing.T) {
	testCases := []struct {
		v    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{7, 3},
		{8, 4},
		{255, 8},
	}
	for _, tt := range testCases {
		assert.Equal(t, tt.want, BitLength(tt.v))
	}
}

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("boom")
	err := WrapErrorf(orig, ErrBadParamInput, "decode %s", "flags")

	assert.ErrorIs(t, err, orig)
	var wrapped *Error
	require.True(t, errors.As(err, &wrapped))
	assert.Equal(t, ErrBadParamInput, wrapped.Code())
	assert.Equal(t, "decode flags: boom", err.Error())
}

func TestAssertPanic(t *testing.T) {
	assert.NotPanics(t, func() { AssertPanic(true, "fine") })
	assert.PanicsWithValue(t, "negative", func() { AssertPanic(false, "negative") })
}

func TestReadConfig(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("profiles: car,motorcycle\napi_port: 7070\n"), 0o644)
	require.NoError(t, err)

	require.NoError(t, ReadConfig(dir))
	assert.Equal(t, "car,motorcycle", viper.GetString("profiles"))
	assert.Equal(t, 7070, viper.GetInt("api_port"))
}

func TestReadConfigMissing(t *testing.T) {
	viper.Reset()
	err := ReadConfig(t.TempDir())
	assert.Error(t, err)
}
