package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: func() *string { s := "  \n"; return &s }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "hinge.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(p, []byte(*tt.content), 0644))
			}

			f, err := NewFile(p)
			require.NoError(t, err)
			assert.Equal(t, 500*time.Millisecond, f.PollInterval())
			assert.True(t, f.WatchPosture())
			assert.False(t, f.AllowNonRootAccess())
		})
	}
}

func TestFileLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "hinge.json",
			content: `{"pollIntervalMillis": 250, "watchPosture": false, "allowNonRootAccess": true}`,
		},
		{
			name:    "yaml",
			file:    "hinge.yaml",
			content: "pollIntervalMillis: 250\nwatchPosture: false\nallowNonRootAccess: true\n",
		},
		{
			name:    "yml",
			file:    "hinge.YML",
			content: "pollIntervalMillis: 250\nwatchPosture: false\nallowNonRootAccess: true\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(p, []byte(tt.content), 0644))

			f, err := NewFile(p)
			require.NoError(t, err)
			assert.Equal(t, 250*time.Millisecond, f.PollInterval())
			assert.False(t, f.WatchPosture())
			assert.True(t, f.AllowNonRootAccess())
		})
	}
}

func TestFileLoadInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "hinge.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0644))

	_, err := NewFile(p)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}

func TestFileOutOfRangePollInterval(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	f.SetPollInterval(time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, f.PollInterval())
}

func TestFileSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"hinge.json", "hinge.yaml"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), name)
			f, err := NewFile(p)
			require.NoError(t, err)

			f.SetPollInterval(2 * time.Second)
			f.SetWatchPosture(false)
			f.SetAllowNonRootAccess(true)
			require.NoError(t, f.Save())

			reloaded, err := NewFile(p)
			require.NoError(t, err)
			assert.Equal(t, 2*time.Second, reloaded.PollInterval())
			assert.False(t, reloaded.WatchPosture())
			assert.True(t, reloaded.AllowNonRootAccess())

			raw, err := NewRawFileConfigFromConfig(reloaded)
			require.NoError(t, err)
			assert.Equal(t, 2000, *raw.PollIntervalMillis)
		})
	}
}

func TestValidatePollInterval(t *testing.T) {
	assert.NoError(t, ValidatePollInterval(MinPollInterval))
	assert.NoError(t, ValidatePollInterval(MaxPollInterval))
	assert.Error(t, ValidatePollInterval(MinPollInterval-time.Millisecond))
	assert.Error(t, ValidatePollInterval(MaxPollInterval+time.Millisecond))

	_, err := NewRawFileConfigFromConfig(nil)
	assert.Error(t, err)
}
