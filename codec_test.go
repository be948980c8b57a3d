package reel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressString_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "%%0", strings.Repeat("0:Jump>1\x10", 500)} {
		enc, err := CompressString(s)
		require.NoError(t, err)
		dec, err := DecompressString(enc)
		require.NoError(t, err)
		assert.Equal(t, s, dec)
	}
}

func TestCompressString_Shrinks(t *testing.T) {
	s := strings.Repeat("12:Jump>1|Fire>0\x10", 200)
	enc, err := CompressString(s)
	require.NoError(t, err)
	assert.Less(t, len(enc), len(s)/4)
}

func TestDecompressString_Errors(t *testing.T) {
	_, err := DecompressString("***")
	assert.ErrorContains(t, err, "decompress")

	_, err = DecompressString("aGVsbG8=") // "hello", not gzip
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-1, "-1"},
		{0.1, "0.1"},
		{1.0 / 3, "0.3333333333333333"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		got := formatFloat(tt.in)
		assert.Equal(t, tt.want, got)
		back, err := parseFloat(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}
}
