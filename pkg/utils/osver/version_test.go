package osver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "11.0", want: Version{Major: 11}},
		{in: "14.2.1", want: Version{Major: 14, Minor: 2, Patch: 1}},
		{in: "14", wantErr: true},
		{in: "1.2.3.4", wantErr: true},
		{in: "a.b", wantErr: true},
		{in: "13.-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err)
	return v
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"11.0", "11.0.0", 0},
		{"11.0", "12.0", -1},
		{"12.1", "12.0.9", 1},
		{"12.1.2", "12.1.10", -1},
	}
	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)
		assert.Equal(t, tt.want, a.Compare(b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want >= 0, a.AtLeast(b), "%s vs %s", tt.a, tt.b)
	}
	assert.True(t, Version{}.IsZero())
}
