// Package ethtx implements signed legacy Ethereum transactions: canonical
// encoding, hashing, signing with and without a chain id, sender recovery and
// the values derived from them.
package ethtx

import (
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Transaction is a signed legacy transaction.
//
// Fields are fixed at construction. Only Sign replaces the signature values,
// and only Sign and SetSender touch the caches.
type Transaction struct {
	nonce    *big.Int
	gasPrice *big.Int
	startGas *big.Int
	to       *common.Address // nil means contract creation
	value    *big.Int
	data     []byte
	v, r, s  *big.Int

	hash atomic.Pointer[common.Hash]
	from atomic.Pointer[common.Address]
}

// NewTransaction creates an unsigned transaction. An empty to creates a
// contract.
func NewTransaction(nonce, gasPrice, startGas *big.Int, to []byte, value *big.Int, data []byte) (*Transaction, error) {
	return NewSignedTransaction(nonce, gasPrice, startGas, to, value, data, nil, nil, nil)
}

// NewContractCreation creates an unsigned transaction deploying code.
func NewContractCreation(nonce, gasPrice, startGas, value *big.Int, code []byte) (*Transaction, error) {
	return NewTransaction(nonce, gasPrice, startGas, nil, value, code)
}

// NewSignedTransaction creates a transaction carrying the given signature
// values. Nil big integers are read as zero.
func NewSignedTransaction(nonce, gasPrice, startGas *big.Int, to []byte, value *big.Int, data []byte, v, r, s *big.Int) (*Transaction, error) {
	tx := new(Transaction)
	err := tx.setFields(&txdata{
		Nonce:    nonce,
		GasPrice: gasPrice,
		StartGas: startGas,
		To:       to,
		Value:    value,
		Data:     data,
		V:        v,
		R:        r,
		S:        s,
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Transaction) setFields(dec *txdata) error {
	var to *common.Address
	switch len(dec.To) {
	case 0:
	case common.AddressLength:
		addr := common.BytesToAddress(dec.To)
		to = &addr
	default:
		return fmt.Errorf("%w: have %d bytes", ErrInvalidRecipient, len(dec.To))
	}

	fields := []struct {
		name string
		val  *big.Int
	}{
		{"nonce", dec.Nonce},
		{"gasprice", dec.GasPrice},
		{"startgas", dec.StartGas},
		{"value", dec.Value},
	}
	for _, f := range fields {
		if !fitsUint256(f.val) {
			return fmt.Errorf("%w: %s %v", ErrValueOutOfRange, f.name, f.val)
		}
	}
	// v, r and s are bounded at recovery, not here.
	for _, sig := range []*big.Int{dec.V, dec.R, dec.S} {
		if sig != nil && sig.Sign() < 0 {
			return fmt.Errorf("%w: negative signature value %v", ErrValueOutOfRange, sig)
		}
	}

	startGas := copyBig(dec.StartGas)
	if gas := IntrinsicGas(dec.Data); startGas.Cmp(new(big.Int).SetUint64(gas)) < 0 {
		return fmt.Errorf("%w: have %v, want %d", ErrIntrinsicGas, startGas, gas)
	}

	tx.nonce = copyBig(dec.Nonce)
	tx.gasPrice = copyBig(dec.GasPrice)
	tx.startGas = startGas
	tx.to = to
	tx.value = copyBig(dec.Value)
	tx.data = common.CopyBytes(dec.Data)
	tx.v = copyBig(dec.V)
	tx.r = copyBig(dec.R)
	tx.s = copyBig(dec.S)
	tx.hash.Store(nil)
	tx.from.Store(nil)
	return nil
}

// fitsUint256 reports whether x is nil or in [0, 2^256).
func fitsUint256(x *big.Int) bool {
	if x == nil {
		return true
	}
	if x.Sign() < 0 {
		return false
	}
	_, overflow := uint256.FromBig(x)
	return !overflow
}

func copyBig(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// Nonce returns the sender's sequence number.
func (tx *Transaction) Nonce() *big.Int { return new(big.Int).Set(tx.nonce) }

// GasPrice returns the price per unit of gas.
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.gasPrice) }

// StartGas returns the gas limit.
func (tx *Transaction) StartGas() *big.Int { return new(big.Int).Set(tx.startGas) }

// Value returns the amount transferred.
func (tx *Transaction) Value() *big.Int { return new(big.Int).Set(tx.value) }

// Data returns the call data or the init code of a contract creation.
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.data) }

// To returns the recipient, or nil for a contract creation.
func (tx *Transaction) To() *common.Address {
	if tx.to == nil {
		return nil
	}
	to := *tx.to
	return &to
}

// IsContractCreation reports whether the recipient is empty.
func (tx *Transaction) IsContractCreation() bool { return tx.to == nil }

// RawSignatureValues returns the v, r, s values as stored.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	return new(big.Int).Set(tx.v), new(big.Int).Set(tx.r), new(big.Int).Set(tx.s)
}

// Hash returns the Keccak256 hash of the full encoding.
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	h := rlpHash(tx.txdata())
	tx.hash.Store(&h)
	return h
}

// Equal reports whether both transactions have the same hash.
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}
	return tx.Hash() == other.Hash()
}

// Key returns the value to key the transaction by in maps.
func (tx *Transaction) Key() common.Hash {
	return tx.Hash()
}

// toBytes returns the recipient as it is encoded: 20 bytes or empty.
func (tx *Transaction) toBytes() []byte {
	if tx.to == nil {
		return []byte{}
	}
	return tx.to.Bytes()
}
