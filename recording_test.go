package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jumpRecording() *Recording {
	r := NewRecording(2)
	r.SetButton(0, "Jump", true)
	r.SetButton(5, "Jump", false)
	r.SetButton(5, "Fire", true)
	r.SetAxis(0, 2, Vec2{-1, 0})
	r.SetAxis(0, 4, Vec2{0.25, 1e-7})
	r.Length = 10
	return r
}

func TestRecording_Encode(t *testing.T) {
	got := jumpRecording().Encode()
	want := "0:Jump>1\x105:Fire>1|Jump>0%2>-1,0;4>0.25,1e-07^%10"
	assert.Equal(t, want, got)
}

func TestRecording_EncodeEmpty(t *testing.T) {
	assert.Equal(t, "%%0", NewRecording(0).Encode())
}

func TestDecodeRecording_RoundTrip(t *testing.T) {
	want := jumpRecording()
	got, err := DecodeRecording(want.Encode())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeRecording_TwoSections(t *testing.T) {
	r, err := DecodeRecording("0:Jump>1\x105:Jump>0%")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Length, "length falls back to the last tick")
	assert.Empty(t, r.Axes)
	assert.Equal(t, map[string]int{"Jump": 0}, r.Buttons[5])
}

func TestDecodeRecording_LengthNeverShrinks(t *testing.T) {
	r, err := DecodeRecording("7:Jump>1%%3")
	require.NoError(t, err)
	assert.Equal(t, 7, r.Length)
}

func TestDecodeRecording_EmptyAxisSlots(t *testing.T) {
	r, err := DecodeRecording("%^1>0,1^%4")
	require.NoError(t, err)
	require.Len(t, r.Axes, 3)
	assert.Empty(t, r.Axes[0])
	assert.Equal(t, map[int]Vec2{1: {0, 1}}, r.Axes[1])
	assert.Empty(t, r.Axes[2])
}

func TestDecodeRecording_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no separator", "0:Jump>1"},
		{"too many sections", "%%%"},
		{"missing tick", "Jump>1%"},
		{"bad tick", "x:Jump>1%"},
		{"negative tick", "-1:Jump>1%"},
		{"missing value", "0:Jump%"},
		{"empty name", "0:>1%"},
		{"bad value", "0:Jump>2%"},
		{"axis without value", "%3%"},
		{"axis one component", "%3>1%"},
		{"axis bad float", "%3>1,y%"},
		{"bad length", "%%ten"},
		{"negative length", "%%-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecording(tt.text)
			assert.ErrorIs(t, err, ErrMalformedRecording)
		})
	}
}

func TestMarshalRecording_RoundTrip(t *testing.T) {
	s, err := MarshalRecording(jumpRecording())
	require.NoError(t, err)
	r, err := UnmarshalRecording(s)
	require.NoError(t, err)
	assert.Equal(t, jumpRecording(), r)
}

func TestUnmarshalRecording_NotCompressed(t *testing.T) {
	_, err := UnmarshalRecording("0:Jump>1%%1")
	assert.ErrorIs(t, err, ErrMalformedRecording)
}

func TestRecording_LastTick(t *testing.T) {
	assert.Equal(t, -1, NewRecording(1).LastTick())
	assert.Equal(t, 5, jumpRecording().LastTick())

	r := NewRecording(1)
	r.SetAxis(0, 9, Vec2{1, 1})
	assert.Equal(t, 9, r.LastTick())
}

func TestValidInputName(t *testing.T) {
	for _, name := range []string{"Jump", "move_left", "P1 Fire", "é"} {
		assert.True(t, validInputName(name), name)
	}
	for _, name := range []string{"", "a%b", "a\x10", "a:b", "a|b", "a>b", "a^b", "a;b", "a,b"} {
		assert.False(t, validInputName(name), "%q", name)
	}
}
