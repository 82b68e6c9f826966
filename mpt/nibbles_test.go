package mpt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNibble(t *testing.T) {
	for i := 0; i < 20; i++ {
		isNibble := i >= 0 && i < 16
		require.Equal(t, isNibble, IsNibble(byte(i)), i)
	}
}

func TestFromBytes(t *testing.T) {
	require.Equal(t, []Nibble{1, 2, 0xa, 0xb}, FromBytes([]byte{0x12, 0xab}))
	require.Equal(t, []Nibble{}, FromBytes(nil))
}

func TestFromNibbleBytes(t *testing.T) {
	ns, err := FromNibbleBytes([]byte{0, 15})
	require.NoError(t, err)
	require.Equal(t, []Nibble{0, 15}, ns)

	_, err = FromNibbleBytes([]byte{16})
	require.Error(t, err)
}

func TestToPrefixed(t *testing.T) {
	cases := []struct {
		ns         []byte
		isLeafNode bool
		expected   []Nibble
	}{
		{
			[]byte{1},
			false,
			[]Nibble{1, 1},
		},
		{
			[]byte{1, 2},
			false,
			[]Nibble{0, 0, 1, 2},
		},
		{
			[]byte{1},
			true,
			[]Nibble{3, 1},
		},
		{
			[]byte{1, 2},
			true,
			[]Nibble{2, 0, 1, 2},
		},
		{
			[]byte{},
			true,
			[]Nibble{2, 0},
		},
	}

	for _, c := range cases {
		ns, err := FromNibbleBytes(c.ns)
		require.NoError(t, err)
		require.Equal(t,
			c.expected,
			ToPrefixed(ns, c.isLeafNode))
	}
}

func TestToBytes(t *testing.T) {
	require.Equal(t, []byte{0x20, 0x12}, ToBytes([]Nibble{2, 0, 1, 2}))
	require.Equal(t, []byte{0x31}, ToBytes([]Nibble{3, 1}))
}

func TestPrefixMatchedLen(t *testing.T) {
	require.Equal(t, 3, PrefixMatchedLen([]Nibble{1, 2, 3, 4}, []Nibble{1, 2, 3}))
	require.Equal(t, 0, PrefixMatchedLen([]Nibble{1}, []Nibble{2}))
	require.Equal(t, 0, PrefixMatchedLen(nil, []Nibble{2}))
}
