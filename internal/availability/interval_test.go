package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "09:00", want: 540},
		{raw: "00:00", want: 0},
		{raw: "23:59", want: 1439},
		{raw: "14:30:00", want: 870},
		{raw: " 08:15 ", want: 495},
		{raw: "", wantErr: true},
		{raw: "9", wantErr: true},
		{raw: "ab:cd", wantErr: true},
		{raw: "25:00", wantErr: true},
		{raw: "12:75", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, "raw=%q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "13:45", FormatClock(825))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		a, b Interval
		want bool
	}{
		{Interval{540, 600}, Interval{570, 630}, true},
		{Interval{540, 600}, Interval{600, 660}, false}, // touching endpoints
		{Interval{540, 600}, Interval{500, 540}, false},
		{Interval{540, 600}, Interval{550, 560}, true},
		{Interval{540, 600}, Interval{500, 700}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.a.Overlaps(tc.b), "%v vs %v", tc.a, tc.b)
		assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "%v vs %v (flipped)", tc.b, tc.a)
	}
}

func TestSubtractNoOp(t *testing.T) {
	base := Interval{540, 1080}

	assert.Equal(t, []Interval{base}, Subtract(base, nil))
	assert.Equal(t, []Interval{base}, Subtract(base, []Interval{{0, 60}, {1200, 1260}}))
}

func TestSubtractSplitsAroundBusy(t *testing.T) {
	base := Interval{540, 1080}
	busy := []Interval{{780, 840}, {900, 930}}

	free := Subtract(base, busy)
	assert.Equal(t, []Interval{{540, 780}, {840, 900}, {930, 1080}}, free)

	// no free interval may overlap any busy interval
	for _, f := range free {
		for _, b := range busy {
			assert.False(t, f.Overlaps(b), "free %v overlaps busy %v", f, b)
		}
	}

	// splitting reconstructs the base exactly: total length is preserved
	covered := 0
	for _, f := range free {
		covered += f.Duration()
	}
	for _, b := range busy {
		covered += b.Duration()
	}
	assert.Equal(t, base.Duration(), covered)
}

func TestSubtractOrderIndependent(t *testing.T) {
	base := Interval{480, 1200}
	busy := []Interval{{600, 660}, {660, 720}, {1000, 1100}}
	reversed := []Interval{{1000, 1100}, {660, 720}, {600, 660}}

	assert.Equal(t, Subtract(base, busy), Subtract(base, reversed))
}

func TestSubtractFullCover(t *testing.T) {
	assert.Empty(t, Subtract(Interval{540, 600}, []Interval{{500, 700}}))
}

func TestSubtractSkipsInvalidInputs(t *testing.T) {
	base := Interval{540, 600}
	assert.Equal(t, []Interval{base}, Subtract(base, []Interval{{580, 580}, {590, 550}}))
	assert.Nil(t, Subtract(Interval{600, 600}, nil))
}

func TestQuantizeFullBlocks(t *testing.T) {
	blocks := Quantize(Interval{540, 1080}, 60, 30)
	require.Len(t, blocks, 9)
	assert.Equal(t, Interval{540, 600}, blocks[0])
	assert.Equal(t, Interval{1020, 1080}, blocks[8])
}

func TestQuantizeTrailingPartial(t *testing.T) {
	// 09:00-10:45 -> one full hour plus a useful 45-minute tail
	blocks := Quantize(Interval{540, 645}, 60, 30)
	assert.Equal(t, []Interval{{540, 600}, {600, 645}}, blocks)

	// 09:00-10:15 -> the 15-minute tail is below the minimum and dropped
	blocks = Quantize(Interval{540, 615}, 60, 30)
	assert.Equal(t, []Interval{{540, 600}}, blocks)
}

func TestQuantizeInvalidBase(t *testing.T) {
	assert.Nil(t, Quantize(Interval{600, 540}, 60, 30))
	assert.Nil(t, Quantize(Interval{540, 600}, 0, 30))
}
