package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easwire/aswbxml-go/pkg/codepage"
)

func TestRunPagesList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunPages(nil, "", &buf))

	output := buf.String()
	assert.Contains(t, output, "table version 16.1")
	assert.Contains(t, output, "AirSync")
	assert.Contains(t, output, "RightsManagement")
	assert.Contains(t, output, "Find:")
}

func TestRunPagesSingle(t *testing.T) {
	tests := []struct {
		name     string
		selector string
	}{
		{"by index", "13"},
		{"by name", "ping"},
		{"by prefix", "PING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RunPages(nil, tt.selector, &buf))
			output := buf.String()
			assert.Contains(t, output, "Page 13: Ping (Ping:, prefix ping)")
			assert.Contains(t, output, "0x05  Ping")
			assert.Contains(t, output, "0x08  HeartbeatInterval")
		})
	}
}

func TestRunPagesRetired(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunPages(nil, "3", &buf))
	assert.Contains(t, buf.String(), "(no tags)")
}

func TestFindPageErrors(t *testing.T) {
	_, err := FindPage(codepage.Default(), "26")
	assert.ErrorContains(t, err, "no code page 26")

	_, err = FindPage(codepage.Default(), "Nope")
	assert.ErrorContains(t, err, `no code page named "Nope"`)
}
