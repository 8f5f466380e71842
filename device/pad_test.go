package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAxes() []AxisConfig {
	return []AxisConfig{
		{Name: "pan", Label: "Pan", Min: -10, Max: 10, Step: 4, Initial: 0},
		{Name: "zoom", Min: 1, Max: 3, Step: 1, Initial: 1},
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		command  string
		wantAxis string
		wantDir  Direction
		wantErr  error
	}{
		{"pan+", "pan", Up, nil},
		{"tilt-", "tilt", Down, nil},
		{" zoom+ ", "zoom", Up, nil},
		{"+", "", 0, ErrMalformedCommand},
		{"", "", 0, ErrMalformedCommand},
		{"pan", "", 0, ErrMalformedCommand},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			axis, dir, err := ParseCommand(tt.command)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAxis, axis)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestFormatCommandRoundTrips(t *testing.T) {
	for _, d := range []Direction{Up, Down} {
		axis, dir, err := ParseCommand(FormatCommand("volume", d))
		require.NoError(t, err)
		assert.Equal(t, "volume", axis)
		assert.Equal(t, d, dir)
	}
}

func TestApplyStepsAndClamps(t *testing.T) {
	p, err := NewPad(testAxes())
	require.NoError(t, err)

	a, err := p.Apply("pan+")
	require.NoError(t, err)
	assert.Equal(t, 4, a.Value)

	p.Apply("pan+")
	a, err = p.Apply("pan+")
	require.NoError(t, err)
	assert.Equal(t, 10, a.Value, "partial step clamps to max")

	a, err = p.Apply("pan+")
	assert.ErrorIs(t, err, ErrAtLimit)
	assert.Equal(t, 10, a.Value)
	assert.Equal(t, "Pan", a.Label)
}

func TestApplyErrors(t *testing.T) {
	p, err := NewPad(testAxes())
	require.NoError(t, err)

	_, err = p.Apply("tilt+")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = p.Apply("zoom")
	assert.ErrorIs(t, err, ErrMalformedCommand)

	_, err = p.Apply("zoom-")
	assert.ErrorIs(t, err, ErrAtLimit)
}

func TestSnapshotAndReset(t *testing.T) {
	p, err := NewPad(testAxes())
	require.NoError(t, err)

	p.Apply("zoom+")
	p.Apply("pan-")

	snap := p.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Axis{Name: "pan", Label: "Pan", Value: -4, Min: -10, Max: 10}, snap[0])
	assert.Equal(t, Axis{Name: "zoom", Label: "zoom", Value: 2, Min: 1, Max: 3}, snap[1])

	p.Reset()
	zoom, ok := p.Axis("zoom")
	require.True(t, ok)
	assert.Equal(t, 1, zoom.Value)

	_, ok = p.Axis("missing")
	assert.False(t, ok)
}

func TestNewPadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		axes []AxisConfig
	}{
		{"empty name", []AxisConfig{{Min: 0, Max: 1, Step: 1}}},
		{"zero step", []AxisConfig{{Name: "a", Min: 0, Max: 1}}},
		{"inverted bounds", []AxisConfig{{Name: "a", Min: 2, Max: 1, Step: 1, Initial: 1}}},
		{"initial out of range", []AxisConfig{{Name: "a", Min: 0, Max: 1, Step: 1, Initial: 5}}},
		{"duplicate", []AxisConfig{
			{Name: "a", Min: 0, Max: 1, Step: 1},
			{Name: "a", Min: 0, Max: 1, Step: 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPad(tt.axes)
			assert.Error(t, err)
		})
	}
}
