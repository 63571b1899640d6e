package codepage

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableShape(t *testing.T) {
	tbl := Default()
	require.NotNil(t, tbl)
	assert.Equal(t, PageCount, tbl.Len())
	assert.Equal(t, "16.1", tbl.Version)

	for i, p := range tbl.Pages() {
		assert.Equal(t, i, p.Index, "page %s", p.Name)
		assert.NotEmpty(t, p.Namespace, "page %d", i)
		assert.NotEmpty(t, p.Prefix, "page %d", i)
		assert.True(t, strings.HasSuffix(p.Namespace, ":"), "namespace %q", p.Namespace)
	}
}

func TestDefaultIsShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Table, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, tbl := range got {
		assert.Same(t, got[0], tbl)
	}
}

func TestPageNamespaces(t *testing.T) {
	tests := []struct {
		index     int
		name      string
		namespace string
		prefix    string
	}{
		{PageAirSync, "AirSync", "AirSync:", "airsync"},
		{PageContacts, "Contacts", "Contacts:", "contacts"},
		{PageEmail, "Email", "Email:", "email"},
		{PageAirNotify, "AirNotify", "AirNotify:", "airnotify"},
		{PageCalendar, "Calendar", "Calendar:", "calendar"},
		{PageFolderHierarchy, "FolderHierarchy", "FolderHierarchy:", "folderhierarchy"},
		{PagePing, "Ping", "Ping:", "ping"},
		{PageProvision, "Provision", "Provision:", "provision"},
		{PageAirSyncBase, "AirSyncBase", "AirSyncBase:", "airsyncbase"},
		{PageRightsManagement, "RightsManagement", "RightsManagement:", "rm"},
		{PageFind, "Find", "Find:", "find"},
	}

	tbl := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tbl.Page(tt.index)
			require.True(t, ok)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.namespace, p.Namespace)
			assert.Equal(t, tt.prefix, p.Prefix)

			idx, ok := tbl.PageForNamespace(tt.namespace)
			assert.True(t, ok)
			assert.Equal(t, tt.index, idx)

			idx, ok = tbl.PageForPrefix(tt.prefix)
			assert.True(t, ok)
			assert.Equal(t, tt.index, idx)
		})
	}
}

func TestTagFor(t *testing.T) {
	tests := []struct {
		page  int
		token byte
		want  string
	}{
		{PageAirSync, 0x05, "Sync"},
		{PageAirSync, 0x0B, "SyncKey"},
		{PageAirSync, 0x29, "HeartbeatInterval"},
		{PageEmail, 0x14, "Subject"},
		{PageEmail, 0x3F, "DisallowNewTimeProposal"},
		{PageCalendar, 0x3C, "ClientUid"},
		{PageFolderHierarchy, 0x16, "FolderSync"},
		{PagePing, 0x0D, "MaxFolders"},
		{PageProvision, 0x3B, "AccountOnlyRemoteWipe"},
		{PageAirSyncBase, 0x0A, "Body"},
		{PageSettings, 0x2B, "RightsManagementInformation"},
		{PageComposeMail, 0x05, "SendMail"},
		{PageFind, 0x19, "GalSearchCriterion"},
	}

	tbl := Default()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := tbl.TagFor(tt.page, tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)

			tok, ok := tbl.TokenFor(tt.page, tt.want)
			require.True(t, ok)
			assert.Equal(t, tt.token, tok)
		})
	}
}

func TestTagForUnassigned(t *testing.T) {
	tbl := Default()

	_, ok := tbl.TagFor(PageAirSync, 0x3F)
	assert.False(t, ok, "AirSync 0x3F is unassigned")

	_, ok = tbl.TagFor(PageAirSyncBase, 0x09)
	assert.False(t, ok, "AirSyncBase 0x09 is a gap")

	_, ok = tbl.TagFor(PageAirNotify, 0x05)
	assert.False(t, ok, "AirNotify is empty")

	_, ok = tbl.TagFor(PageCount, 0x05)
	assert.False(t, ok, "page out of range")

	_, ok = tbl.TagFor(-1, 0x05)
	assert.False(t, ok, "negative page")
}

func TestTokenForUnknownTag(t *testing.T) {
	tbl := Default()

	_, ok := tbl.TokenFor(PageAirSync, "Subject")
	assert.False(t, ok, "Subject belongs to Email, not AirSync")

	_, ok = tbl.TokenFor(PageAirSync, "sync")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = tbl.TokenFor(99, "Sync")
	assert.False(t, ok)
}

func TestPageBijection(t *testing.T) {
	for _, p := range Default().Pages() {
		seen := map[string]bool{}
		for _, tok := range p.Tokens() {
			assert.GreaterOrEqual(t, tok, byte(MinToken))
			assert.LessOrEqual(t, tok, byte(MaxToken))

			name, ok := p.Tag(tok)
			require.True(t, ok)
			assert.False(t, seen[name], "page %s duplicate tag %s", p.Name, name)
			seen[name] = true

			back, ok := p.Token(name)
			require.True(t, ok)
			assert.Equal(t, tok, back)
		}
	}
}

func TestAirNotifyIsEmpty(t *testing.T) {
	p, ok := Default().Page(PageAirNotify)
	require.True(t, ok)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Tokens())
}

func TestReferenceFor(t *testing.T) {
	tbl := Default()

	ref, ok := tbl.ReferenceFor(PageEmail, 0x14)
	require.True(t, ok)
	assert.Equal(t, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-asemail", ref)

	_, ok = tbl.ReferenceFor(PageEmail, 0x04)
	assert.False(t, ok, "unassigned token has no reference")

	_, ok = tbl.ReferenceFor(40, 0x05)
	assert.False(t, ok)
}

func TestReferenceForTagOverrides(t *testing.T) {
	tbl := Default()

	tests := []struct {
		page  int
		token byte
		want  string
	}{
		{PageEmail2, 0x09, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-ascon"},
		{PageEmail2, 0x0A, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-ascon"},
		{PageEmail2, 0x05, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-asemail"},
		{PageSettings, 0x2B, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-asrm"},
		{PageSettings, 0x05, "https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-ascmd"},
	}
	for _, tt := range tests {
		ref, ok := tbl.ReferenceFor(tt.page, tt.token)
		require.True(t, ok, "page %d token 0x%02X", tt.page, tt.token)
		assert.Equal(t, tt.want, ref, "page %d token 0x%02X", tt.page, tt.token)
	}
}

// testTable renders a minimal valid 26-page table, letting callers patch
// individual pages.
func testTable(patch func(i int) string) string {
	var sb strings.Builder
	sb.WriteString("version: \"test\"\npages:\n")
	for i := 0; i < PageCount; i++ {
		if s := patch(i); s != "" {
			sb.WriteString(s)
			continue
		}
		fmt.Fprintf(&sb, "  - { index: %d, name: P%d, namespace: \"P%d:\", prefix: p%d, tags: [] }\n", i, i, i, i)
	}
	return sb.String()
}

func TestLoadTokenReference(t *testing.T) {
	data := testTable(func(i int) string {
		if i != 0 {
			return ""
		}
		return `  - index: 0
    name: First
    namespace: "First:"
    prefix: first
    ref: https://example.com/page
    tags:
      - { token: 0x05, name: A, ref: https://example.com/a }
      - { token: 0x06, name: B }
`
	})

	tbl, err := Load([]byte(data))
	require.NoError(t, err)

	ref, ok := tbl.ReferenceFor(0, 0x05)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a", ref)

	ref, ok = tbl.ReferenceFor(0, 0x06)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/page", ref)

	_, ok = tbl.ReferenceFor(1, 0x05)
	assert.False(t, ok)
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	page0 := func(body string) string {
		return testTable(func(i int) string {
			if i == 0 {
				return body
			}
			return ""
		})
	}

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "too few pages",
			data:    "pages:\n  - { index: 0, name: A, namespace: \"A:\", prefix: a }\n",
			wantErr: "1 pages, want 26",
		},
		{
			name:    "index out of order",
			data:    page0("  - { index: 7, name: X, namespace: \"X:\", prefix: x }\n"),
			wantErr: "has index 7",
		},
		{
			name:    "missing prefix",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\" }\n"),
			wantErr: "needs a namespace and a prefix",
		},
		{
			name:    "duplicate namespace",
			data:    page0("  - { index: 0, name: X, namespace: \"P1:\", prefix: x }\n"),
			wantErr: "namespace \"P1:\" used by pages",
		},
		{
			name:    "duplicate prefix",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: p2 }\n"),
			wantErr: "prefix \"p2\" used by pages",
		},
		{
			name:    "global token collision",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: x, tags: [{ token: 0x03, name: Bad }] }\n"),
			wantErr: "outside 0x05-0x3F",
		},
		{
			name:    "token above range",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: x, tags: [{ token: 0x40, name: Bad }] }\n"),
			wantErr: "outside 0x05-0x3F",
		},
		{
			name:    "duplicate token",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: x, tags: [{ token: 0x05, name: A }, { token: 0x05, name: B }] }\n"),
			wantErr: "assigned to \"A\" and \"B\"",
		},
		{
			name:    "duplicate tag",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: x, tags: [{ token: 0x05, name: A }, { token: 0x06, name: A }] }\n"),
			wantErr: "has tokens 0x05 and 0x06",
		},
		{
			name:    "unnamed tag",
			data:    page0("  - { index: 0, name: X, namespace: \"X:\", prefix: x, tags: [{ token: 0x05 }] }\n"),
			wantErr: "has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load([]byte("pages: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing code page table")
}

func TestEmbeddedYAMLIsCopy(t *testing.T) {
	a := EmbeddedYAML()
	require.NotEmpty(t, a)
	a[0] = 'X'
	assert.NotEqual(t, a[0], EmbeddedYAML()[0])
}
