package mpt

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestEmptyNodeHash(t *testing.T) {
	emptyRLP, err := rlp.EncodeToBytes(EmptyNodeRaw)
	require.NoError(t, err)
	require.Equal(t, EmptyNodeHash, crypto.Keccak256(emptyRLP))
	require.Equal(t, "56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
		hex.EncodeToString(EmptyNodeHash))
}

func TestLeafNode(t *testing.T) {
	nibbles, value := []byte{1, 2, 3, 4}, []byte("verb")
	l, err := NewLeafNodeFromNibbleBytes(nibbles, value)
	require.NoError(t, err)
	require.Equal(t, "c9832012348476657262", fmt.Sprintf("%x", l.Serialize()))
	require.Equal(t, "8c535ab8727cc58ee2a4bd1f41fd12c94d22536934fc3a9addc4ebe6ee20b02b",
		fmt.Sprintf("%x", l.Hash()))

	// a lone leaf is the root of a one-entry trie
	require.Equal(t, ethTrieHash(t, map[string][]byte{"\x12\x34": value}), l.Hash())
}

func TestBranch(t *testing.T) {
	nibbles, value := []byte{5, 0, 6}, []byte("coin")
	leaf, err := NewLeafNodeFromNibbleBytes(nibbles, value)
	require.NoError(t, err)

	b := NewBranchNode()
	b.SetBranch(0, leaf)
	b.SetValue([]byte("verb"))

	serialized := mustHexBytes(t, "ddc882350684636f696e8080808080808080808080808080808476657262")
	require.Equal(t, serialized, b.Serialize())
	require.Equal(t, crypto.Keccak256(serialized), b.Hash())
}

func TestExtensionNode(t *testing.T) {
	nibbles, value := []byte{5, 0, 6}, []byte("coin")
	leaf, err := NewLeafNodeFromNibbleBytes(nibbles, value)
	require.NoError(t, err)

	b := NewBranchNode()
	b.SetBranch(0, leaf)
	b.SetValue([]byte("verb"))

	ns, err := FromNibbleBytes([]byte{0, 1, 0, 2, 0, 3, 0, 4})
	require.NoError(t, err)
	e := NewExtensionNode(ns, b)
	require.Equal(t, "e4850001020304ddc882350684636f696e8080808080808080808080808080808476657262", fmt.Sprintf("%x", e.Serialize()))

	// 01020304 holds the branch value, 010203040506 the leaf below child 0
	expected := ethTrieHash(t, map[string][]byte{
		"\x01\x02\x03\x04":         []byte("verb"),
		"\x01\x02\x03\x04\x05\x06": []byte("coin"),
	})
	require.Equal(t, expected, e.Hash())
}

func mustHexBytes(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestLargeChildIsReferencedByHash(t *testing.T) {
	leaf := NewLeafNodeFromNibbles([]Nibble{1}, make([]byte, 40))
	require.GreaterOrEqual(t, len(leaf.Serialize()), 32)

	b := NewBranchNode()
	b.SetBranch(3, leaf)
	require.Equal(t, leaf.Hash(), b.Raw()[3])
}
