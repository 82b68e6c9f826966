package mpt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	// EmptyNodeRaw is the raw form of an empty node.
	EmptyNodeRaw = []byte{}
	// EmptyNodeHash is the root hash of an empty trie.
	EmptyNodeHash = crypto.Keccak256(mustEncode(EmptyNodeRaw))
)

type Node interface {
	Hash() []byte // common.Hash
	Raw() []interface{}
	Serialize() []byte
}

func IsEmptyNode(node Node) bool {
	return node == nil
}

// Hash returns the hash of node, EmptyNodeHash for the empty node.
func Hash(node Node) []byte {
	if IsEmptyNode(node) {
		return EmptyNodeHash
	}
	return node.Hash()
}

// Serialize returns the RLP encoding of node.
func Serialize(node Node) []byte {
	if IsEmptyNode(node) {
		return mustEncode(EmptyNodeRaw)
	}
	return node.Serialize()
}

// ref returns how a parent refers to node: inline when its encoding is
// shorter than 32 bytes, by hash otherwise.
func ref(node Node) interface{} {
	if IsEmptyNode(node) {
		return EmptyNodeRaw
	}
	if len(node.Serialize()) >= 32 {
		return node.Hash()
	}
	return node.Raw()
}

func mustEncode(raw interface{}) []byte {
	enc, err := rlp.EncodeToBytes(raw)
	if err != nil {
		panic(err)
	}
	return enc
}

type LeafNode struct {
	Path  []Nibble
	Value []byte
}

func NewLeafNodeFromNibbleBytes(nibbles []byte, value []byte) (*LeafNode, error) {
	ns, err := FromNibbleBytes(nibbles)
	if err != nil {
		return nil, fmt.Errorf("could not leaf node from nibbles: %w", err)
	}
	return NewLeafNodeFromNibbles(ns, value), nil
}

func NewLeafNodeFromNibbles(nibbles []Nibble, value []byte) *LeafNode {
	return &LeafNode{
		Path:  nibbles,
		Value: value,
	}
}

func NewLeafNodeFromBytes(key, value []byte) *LeafNode {
	return NewLeafNodeFromNibbles(FromBytes(key), value)
}

func (l LeafNode) Hash() []byte {
	return crypto.Keccak256(l.Serialize())
}

func (l LeafNode) Raw() []interface{} {
	path := ToBytes(ToPrefixed(l.Path, true))
	return []interface{}{path, l.Value}
}

func (l LeafNode) Serialize() []byte {
	return mustEncode(l.Raw())
}

type BranchNode struct {
	Branches [16]Node
	Value    []byte
}

func NewBranchNode() *BranchNode {
	return &BranchNode{
		Branches: [16]Node{},
	}
}

func (b BranchNode) Hash() []byte {
	return crypto.Keccak256(b.Serialize())
}

func (b *BranchNode) SetBranch(nibble Nibble, node Node) {
	b.Branches[int(nibble)] = node
}

func (b *BranchNode) SetValue(value []byte) {
	b.Value = value
}

func (b BranchNode) HasValue() bool {
	return b.Value != nil
}

func (b BranchNode) Raw() []interface{} {
	hashes := make([]interface{}, 17)
	for i := 0; i < 16; i++ {
		hashes[i] = ref(b.Branches[i])
	}
	hashes[16] = b.Value
	return hashes
}

func (b BranchNode) Serialize() []byte {
	return mustEncode(b.Raw())
}

type ExtensionNode struct {
	Path []Nibble
	Next Node
}

func NewExtensionNode(nibbles []Nibble, next Node) *ExtensionNode {
	return &ExtensionNode{
		Path: nibbles,
		Next: next,
	}
}

func (e ExtensionNode) Hash() []byte {
	return crypto.Keccak256(e.Serialize())
}

func (e ExtensionNode) Raw() []interface{} {
	return []interface{}{ToBytes(ToPrefixed(e.Path, false)), ref(e.Next)}
}

func (e ExtensionNode) Serialize() []byte {
	return mustEncode(e.Raw())
}
