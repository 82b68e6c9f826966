package mpt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/trie"
)

// Proof holds the nodes on the path to a key, keyed by their hash.
type Proof interface {
	ethdb.KeyValueReader
	Serialize() [][]byte
}

// NodeSet is an in-memory Proof.
type NodeSet map[string][]byte

// NodeSetFromNodes rebuilds a proof from serialized nodes.
func NodeSetFromNodes(nodes [][]byte) NodeSet {
	set := make(NodeSet, len(nodes))
	for _, node := range nodes {
		set.add(node)
	}
	return set
}

func (set NodeSet) add(node []byte) {
	set[string(crypto.Keccak256(node))] = node
}

func (set NodeSet) Has(key []byte) (bool, error) {
	_, ok := set[string(key)]
	return ok, nil
}

func (set NodeSet) Get(key []byte) ([]byte, error) {
	node, ok := set[string(key)]
	if !ok {
		return nil, fmt.Errorf("missing proof node %x", key)
	}
	return node, nil
}

// Serialize returns the nodes in no particular order.
func (set NodeSet) Serialize() [][]byte {
	nodes := make([][]byte, 0, len(set))
	for _, node := range set {
		nodes = append(nodes, node)
	}
	return nodes
}

// Prove returns the merkle proof for the given key, which is the list of
// serialized nodes from the root to the node holding the value.
func (t *Trie) Prove(key []byte) (Proof, bool) {
	proof := make(NodeSet)
	node := t.root
	nibbles := FromBytes(key)

	for {
		if IsEmptyNode(node) {
			return nil, false
		}

		proof.add(Serialize(node))

		if leaf, ok := node.(*LeafNode); ok {
			matched := PrefixMatchedLen(leaf.Path, nibbles)
			if matched != len(leaf.Path) || matched != len(nibbles) {
				return nil, false
			}

			return proof, true
		}

		if branch, ok := node.(*BranchNode); ok {
			if len(nibbles) == 0 {
				return proof, branch.HasValue()
			}

			b, remaining := nibbles[0], nibbles[1:]
			nibbles = remaining
			node = branch.Branches[b]
			continue
		}

		if ext, ok := node.(*ExtensionNode); ok {
			matched := PrefixMatchedLen(ext.Path, nibbles)
			// E 01020304
			//   010203
			if matched < len(ext.Path) {
				return nil, false
			}

			nibbles = nibbles[matched:]
			node = ext.Next
			continue
		}

		panic("not found")
	}
}

// VerifyProof checks proof for key under rootHash and returns the value.
func VerifyProof(rootHash []byte, key []byte, proof Proof) (value []byte, err error) {
	return trie.VerifyProof(common.BytesToHash(rootHash), key, proof)
}
