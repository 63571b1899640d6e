package wbxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

// buildAllTags returns a document holding every assigned tag of every page,
// nested by page so the encoder has to switch pages in both directions.
func buildAllTags(tbl *codepage.Table) *Document {
	root := NewElement(codepage.PageAirSync, "Sync")
	for _, p := range tbl.Pages() {
		var group *Element
		for _, tok := range p.Tokens() {
			name, _ := p.Tag(tok)
			el := NewElement(p.Index, name)
			if group == nil {
				group = el
				root.Append(group)
				continue
			}
			switch tok % 3 {
			case 0:
				el.Append(Text(name))
			case 1:
				el.Append(Opaque{tok, 0x00, tok})
			}
			group.Append(el)
		}
	}
	root.Append(NewElement(codepage.PageAirSync, "SyncKey", Text("done")))
	return NewDocument(root)
}

func TestRoundTripAllTags(t *testing.T) {
	doc := buildAllTags(codepage.Default())

	data, err := Encode(doc, nil)
	require.NoError(t, err)

	back, err := Decode(data, nil)
	require.NoError(t, err)
	assert.True(t, EqualDocuments(doc, back), "decode(encode(T)) differs from T")

	again, err := Encode(back, nil)
	require.NoError(t, err)
	assert.Equal(t, data, again, "re-encoding a decoded tree is stable")
}

func TestRoundTripFixtures(t *testing.T) {
	for name, hex := range map[string]string{
		"ping":         pingHex,
		"sync request": syncRequestHex,
		"strict sync":  "03 01 6A 00 45 03 53 00 01",
		"unknown tags": "03 01 6A 00 7F 3F 01",
		"opaque":       "03 01 6A 00 45 C3 00 C3 01 FF 01",
	} {
		t.Run(name, func(t *testing.T) {
			data := mustHex(t, hex)
			doc, err := Decode(data, nil)
			require.NoError(t, err)

			got, err := Encode(doc, nil)
			require.NoError(t, err)
			assert.Equal(t, FormatHex(data), FormatHex(got))
		})
	}
}

func TestRoundTripSyncScenario(t *testing.T) {
	doc, err := Decode(mustHex(t, syncScenarioHex), nil)
	require.NoError(t, err)

	got, err := Encode(doc, nil)
	require.NoError(t, err)

	// The surplus END is not reproduced.
	assert.Equal(t, "03 01 6A 00 45 03 53 00 01", FormatHex(got))

	back, err := Decode(got, &DecodeOptions{StrictEnd: true})
	require.NoError(t, err)
	assert.True(t, EqualDocuments(doc, back))
}

func TestRoundTripRedundantSwitches(t *testing.T) {
	// SWITCH_PAGE to the active page, twice, is dropped on re-encode.
	doc, err := Decode(mustHex(t, "03 01 6A 00 00 00 00 00 45 03 53 00 01"), nil)
	require.NoError(t, err)

	got, err := Encode(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "03 01 6A 00 45 03 53 00 01", FormatHex(got))
}
