package ethtx

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/veritas-L2/ethtx/mpt"
)

// Transactions is a block's ordered transaction list.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// EncodeIndex encodes the i'th transaction to w.
func (s Transactions) EncodeIndex(i int, w *bytes.Buffer) {
	s[i].EncodeRLP(w)
}

// indexKey is the trie key of the i'th transaction.
func indexKey(i int) []byte {
	return rlp.AppendUint64(nil, uint64(i))
}

func (s Transactions) trie() *mpt.Trie {
	t := mpt.NewTrie()
	var buf bytes.Buffer
	for i := range s {
		buf.Reset()
		s.EncodeIndex(i, &buf)
		t.Put(indexKey(i), common.CopyBytes(buf.Bytes()))
	}
	return t
}

// DeriveRoot returns the root of the trie mapping each index to the
// transaction's encoding.
func DeriveRoot(txs Transactions) common.Hash {
	return common.BytesToHash(txs.trie().Hash())
}

// ProveInclusion returns the proof that txs[index] is under DeriveRoot(txs).
func ProveInclusion(txs Transactions, index int) (mpt.Proof, error) {
	if index < 0 || index >= len(txs) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(txs))
	}
	proof, ok := txs.trie().Prove(indexKey(index))
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrInclusionNotProven, index)
	}
	return proof, nil
}

// VerifyInclusion checks proof against root and returns the transaction at
// index.
func VerifyInclusion(root common.Hash, index int, proof mpt.Proof) (*Transaction, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	value, err := mpt.VerifyProof(root[:], indexKey(index), proof)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInclusionNotProven, err)
	}
	if value == nil {
		return nil, fmt.Errorf("%w: index %d", ErrInclusionNotProven, index)
	}
	return DecodeTransaction(value)
}
