package ethtx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// CreateAddress returns the address of the contract deployed by sender at
// nonce.
func CreateAddress(sender common.Address, nonce *big.Int) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{sender, nonce})
	return common.BytesToAddress(crypto.Keccak256(data)[12:])
}

// Creates returns the address of the contract the transaction deploys, or
// nil when it has a recipient.
func (tx *Transaction) Creates() (*common.Address, error) {
	if tx.to != nil {
		return nil, nil
	}
	from, err := tx.Sender()
	if err != nil {
		return nil, err
	}
	addr := CreateAddress(from, tx.nonce)
	return &addr, nil
}
