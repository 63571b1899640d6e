package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	raw := mustHex(t, pingHex)

	t.Run("binary file", func(t *testing.T) {
		path := writeTempFile(t, "ping.wbxml", raw)
		got, err := ReadInput(path, nil, false)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("hex file", func(t *testing.T) {
		path := writeTempFile(t, "ping.hex", []byte(pingHex+"\n"))
		got, err := ReadInput(path, nil, true)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("stdin", func(t *testing.T) {
		got, err := ReadInput("-", strings.NewReader("03:01:6a:00"), true)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x03, 0x01, 0x6A, 0x00}, got)
	})

	t.Run("bad hex", func(t *testing.T) {
		_, err := ReadInput("-", strings.NewReader("zz"), true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid hex input")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadInput(filepath.Join(t.TempDir(), "missing"), nil, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read input")
	})
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "stdin", SourceName("-"))
	assert.Equal(t, "a/b.wbxml", SourceName("a/b.wbxml"))
}
