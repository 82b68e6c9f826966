package ethtx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// txdata is the wire layout of a transaction.
type txdata struct {
	Nonce    *big.Int
	GasPrice *big.Int
	StartGas *big.Int
	To       []byte
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

func (tx *Transaction) txdata() *txdata {
	return &txdata{
		Nonce:    tx.nonce,
		GasPrice: tx.gasPrice,
		StartGas: tx.startGas,
		To:       tx.toBytes(),
		Value:    tx.value,
		Data:     tx.data,
		V:        tx.v,
		R:        tx.r,
		S:        tx.s,
	}
}

// unsignedFields is the list hashed by pre-EIP-155 signatures.
func (tx *Transaction) unsignedFields() []interface{} {
	return []interface{}{
		tx.nonce,
		tx.gasPrice,
		tx.startGas,
		tx.toBytes(),
		tx.value,
		tx.data,
	}
}

// protectedFields is the list hashed by EIP-155 signatures.
func (tx *Transaction) protectedFields(chainID *big.Int) []interface{} {
	return append(tx.unsignedFields(), chainID, uint(0), uint(0))
}

// EncodeRLP implements rlp.Encoder.
func (tx *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, tx.txdata())
}

// DecodeRLP implements rlp.Decoder. The decoded fields are validated the same
// way the constructors validate them.
func (tx *Transaction) DecodeRLP(s *rlp.Stream) error {
	var dec txdata
	if err := s.Decode(&dec); err != nil {
		return err
	}
	return tx.setFields(&dec)
}

// MarshalBinary returns the full encoding.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := tx.EncodeRLP(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes b into tx.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	if err := rlp.DecodeBytes(b, tx); err != nil {
		if errors.Is(err, ErrInvalidTransaction) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	return nil
}

// EncodeUnsigned returns the encoding without the signature values.
func (tx *Transaction) EncodeUnsigned() ([]byte, error) {
	return rlp.EncodeToBytes(tx.unsignedFields())
}

// EncodeProtected returns the encoding signed under chainID.
func (tx *Transaction) EncodeProtected(chainID *big.Int) ([]byte, error) {
	if chainID == nil || chainID.Sign() < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChainID, chainID)
	}
	return rlp.EncodeToBytes(tx.protectedFields(chainID))
}

// DecodeTransaction decodes a full encoding.
func DecodeTransaction(b []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := tx.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if log.Root().Enabled(context.Background(), log.LevelDebug) {
		log.Debug("Decoded transaction", "hash", tx.Hash(), "size", len(b))
	}
	return tx, nil
}
