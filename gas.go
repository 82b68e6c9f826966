package ethtx

import "github.com/ethereum/go-ethereum/params"

// IntrinsicGas returns the gas charged before execution for a transaction
// carrying data.
func IntrinsicGas(data []byte) uint64 {
	var zeros uint64
	for _, b := range data {
		if b == 0 {
			zeros++
		}
	}
	nonZeros := uint64(len(data)) - zeros
	return params.TxGas + zeros*params.TxDataZeroGas + nonZeros*params.TxDataNonZeroGasFrontier
}

// IntrinsicGas returns the intrinsic gas of the transaction's data.
func (tx *Transaction) IntrinsicGas() uint64 {
	return IntrinsicGas(tx.data)
}
