package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easwire/aswbxml-go/pkg/wbxml"
)

const (
	// <Ping><HeartbeatInterval>480</HeartbeatInterval></Ping>
	pingHex = "03 01 6A 00 00 0D 45 48 03 34 38 30 00 01 01"

	// <Sync>S</Sync> followed by a surplus END.
	syncScenarioHex = "03 01 6A 00 45 03 53 00 01 01"
)

const pingXML = `<Ping xmlns="Ping:">
  <HeartbeatInterval>480</HeartbeatInterval>
</Ping>
`

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := wbxml.ParseHex(s)
	require.NoError(t, err)
	return b
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
