package wbxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixtures shared by the codec tests.
const (
	// <Sync>S</Sync> followed by a surplus END.
	syncScenarioHex = "03 01 6A 00 45 03 53 00 01 01"

	// <Ping><HeartbeatInterval>480</HeartbeatInterval></Ping>
	pingHex = "03 01 6A 00 00 0D 45 48 03 34 38 30 00 01 01"

	// A Sync request whose Options switch to AirSyncBase for BodyPreference.
	syncRequestHex = "03 01 6A 00 45 5C 4F" +
		" 4B 03 30 00 01" +
		" 52 03 31 00 01" +
		" 57 00 11 45 46 03 32 00 01 01" +
		" 01 01 01 01"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := ParseHex(s)
	require.NoError(t, err)
	return b
}

func syncRequestDoc() *Document {
	return NewDocument(
		NewElement(0, "Sync",
			NewElement(0, "Collections",
				NewElement(0, "Collection",
					NewElement(0, "SyncKey", Text("0")),
					NewElement(0, "CollectionId", Text("1")),
					NewElement(0, "Options",
						NewElement(17, "BodyPreference",
							NewElement(17, "Type", Text("2")),
						),
					),
				),
			),
		),
	)
}
