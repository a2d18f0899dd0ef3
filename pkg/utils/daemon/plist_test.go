package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func TestLaunchDaemonPlist(t *testing.T) {
	b, err := LaunchDaemonPlist("/usr/local/bin/hinge", []string{"--always-allow-non-root-access"})
	require.NoError(t, err)
	assert.Contains(t, string(b), "<!DOCTYPE plist")

	var got launchDaemon
	format, err := plist.Unmarshal(b, &got)
	require.NoError(t, err)
	assert.Equal(t, plist.XMLFormat, format)

	assert.Equal(t, "cc.chlc.hinge", got.Label)
	assert.Equal(t, []string{"/usr/local/bin/hinge", "daemon", "--always-allow-non-root-access"}, got.ProgramArguments)
	assert.True(t, got.RunAtLoad)
	assert.True(t, got.KeepAlive)
	assert.Equal(t, LogPath, got.StandardErrorPath)
}
