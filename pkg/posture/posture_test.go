package posture

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Posture
	}{
		{name: "flat", angle: 180, want: Continuous},
		{name: "continuous lower bound", angle: 170, want: Continuous},
		{name: "continuous wins at 190", angle: 190, want: Continuous},
		{name: "just past flat", angle: 191, want: Flipped},
		{name: "flipped upper edge", angle: 349.9, want: Flipped},
		{name: "folded from 350", angle: 350, want: Folded},
		{name: "closed", angle: 0, want: Folded},
		{name: "folded upper bound", angle: 30, want: Folded},
		{name: "just opened", angle: 31, want: HalfOpened},
		{name: "right angle", angle: 90, want: HalfOpened},
		{name: "below continuous", angle: 169.9, want: HalfOpened},
		{name: "negative wraps to 350", angle: -10, want: Folded},
		{name: "over a turn wraps to 10", angle: 370, want: Folded},
		{name: "many turns", angle: 180 + 360*7, want: Continuous},
		{name: "negative turns", angle: 90 - 360*3, want: HalfOpened},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromAngle(tt.angle); got != tt.want {
				t.Errorf("FromAngle(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{0, 0},
		{360, 0},
		{-360, 0},
		{-10, 350},
		{370, 10},
		{720.5, 0.5},
		{-0.0, 0},
	}
	for _, tt := range tests {
		got := Normalize(tt.angle)
		assert.InDelta(t, tt.want, got, 1e-9, "Normalize(%v)", tt.angle)
		assert.False(t, math.Signbit(got), "Normalize(%v) returned negative zero", tt.angle)
	}
}

func TestNormalizeRangeAndPeriod(t *testing.T) {
	for a := -1080.0; a <= 1080.0; a += 0.25 {
		n := Normalize(a)
		require.GreaterOrEqual(t, n, 0.0, "Normalize(%v)", a)
		require.Less(t, n, 360.0, "Normalize(%v)", a)

		for _, k := range []float64{-3, -1, 1, 4} {
			require.InDelta(t, n, Normalize(a+360*k), 1e-9, "Normalize(%v) vs k=%v", a, k)
		}
	}

	// Tiny negatives round up to exactly 360 before the final Mod.
	n := Normalize(-1e-20)
	assert.GreaterOrEqual(t, n, 0.0)
	assert.Less(t, n, 360.0)
}

func TestFromAngleTotal(t *testing.T) {
	for n := 0.0; n < 360; n += 0.1 {
		require.True(t, FromAngle(n).Valid(), "FromAngle(%v)", n)
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, HalfOpened, FromAngle(v))
	}
}

func TestDisplayStrings(t *testing.T) {
	want := map[Posture]string{
		Continuous: "continuous",
		Folded:     "folded",
		HalfOpened: "half-opened",
		Flipped:    "flipped",
	}

	seen := map[string]Posture{}
	for _, p := range All() {
		s := p.String()
		assert.Equal(t, want[p], s)
		if other, ok := seen[s]; ok {
			t.Fatalf("%v and %v share display string %q", p, other, s)
		}
		seen[s] = p

		parsed, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Len(t, seen, 4)

	_, err := Parse("tent")
	assert.Error(t, err)
	assert.False(t, Posture(9).Valid())
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Posture{"posture": HalfOpened})
	require.NoError(t, err)
	assert.JSONEq(t, `{"posture":"half-opened"}`, string(b))

	var got struct {
		Posture Posture `json:"posture"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"posture":"flipped"}`), &got))
	assert.Equal(t, Flipped, got.Posture)

	require.Error(t, json.Unmarshal([]byte(`{"posture":"tent"}`), &got))
}
