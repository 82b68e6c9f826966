package ethtx

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestEncodeRLP(t *testing.T) {
	t.Run("should encode like go-ethereum's legacy transaction", func(t *testing.T) {
		tx := mainnetTx(t)
		enc, err := tx.MarshalBinary()
		require.NoError(t, err)

		v, r, s := tx.RawSignatureValues()
		to := testTo
		etx := types.NewTx(&types.LegacyTx{
			Nonce:    0x144,
			GasPrice: big.NewInt(0x3fcf6e43c5),
			Gas:      0x493e0,
			To:       &to,
			Value:    big.NewInt(0),
			Data:     testPayload,
			V:        v,
			R:        r,
			S:        s,
		})
		expected, err := etx.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, expected, enc)

		var buf bytes.Buffer
		require.NoError(t, tx.EncodeRLP(&buf))
		require.Equal(t, expected, buf.Bytes())
	})

	t.Run("should encode zero as the empty string and contract creation as empty to", func(t *testing.T) {
		tx, err := NewTransaction(big.NewInt(0), big.NewInt(0), big.NewInt(21000), nil, big.NewInt(0), nil)
		require.NoError(t, err)
		enc, err := tx.MarshalBinary()
		require.NoError(t, err)
		// [0, 0, 21000, '', 0, '', 0, 0, 0]
		require.Equal(t, mustHex("cb8080825208808080808080"), enc)
	})

	t.Run("should round trip through DecodeTransaction", func(t *testing.T) {
		for _, tx := range []*Transaction{mainnetTx(t), newTestTx(t, nil, []byte{0, 0, 1}), newTestTx(t, testTo.Bytes(), nil)} {
			enc, err := tx.MarshalBinary()
			require.NoError(t, err)

			decoded, err := DecodeTransaction(enc)
			require.NoError(t, err)
			require.Equal(t, tx.Hash(), decoded.Hash())

			again, err := decoded.MarshalBinary()
			require.NoError(t, err)
			require.Equal(t, enc, again)
		}
	})

	t.Run("should decode through rlp.DecodeBytes", func(t *testing.T) {
		tx := mainnetTx(t)
		enc, err := rlp.EncodeToBytes(tx)
		require.NoError(t, err)

		var decoded Transaction
		require.NoError(t, rlp.DecodeBytes(enc, &decoded))
		require.True(t, tx.Equal(&decoded))
	})
}

func TestDecodeTransactionErrors(t *testing.T) {
	encode := func(fields ...interface{}) []byte {
		enc, err := rlp.EncodeToBytes(fields)
		require.NoError(t, err)
		return enc
	}

	t.Run("should reject a recipient of the wrong length", func(t *testing.T) {
		enc := encode(uint(0), uint(0), uint(21000), []byte{1, 2, 3}, uint(0), []byte{}, uint(0), uint(0), uint(0))
		_, err := DecodeTransaction(enc)
		require.ErrorIs(t, err, ErrInvalidRecipient)
	})

	t.Run("should reject startgas below intrinsic gas", func(t *testing.T) {
		enc := encode(uint(0), uint(0), uint(20999), []byte{}, uint(0), []byte{}, uint(0), uint(0), uint(0))
		_, err := DecodeTransaction(enc)
		require.ErrorIs(t, err, ErrIntrinsicGas)
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, enc := range [][]byte{
			nil,
			{0xc0},
			encode(uint(0), uint(0), uint(21000)),
			encode(uint(0), uint(0), uint(21000), []byte{}, uint(0), []byte{}, uint(0), uint(0), uint(0), uint(0)),
			// non-canonical integer with a leading zero byte
			encode([]byte{0, 1}, uint(0), uint(21000), []byte{}, uint(0), []byte{}, uint(0), uint(0), uint(0)),
			append(encode(uint(0), uint(0), uint(21000), []byte{}, uint(0), []byte{}, uint(0), uint(0), uint(0)), 0x80),
		} {
			_, err := DecodeTransaction(enc)
			require.ErrorIs(t, err, ErrInvalidTransaction, "%x", enc)
		}
	})
}

func TestEncodeUnsignedAndProtected(t *testing.T) {
	tx := mainnetTx(t)
	etx := ethTransaction(t, tx)

	t.Run("should hash the unsigned encoding like the frontier signer", func(t *testing.T) {
		enc, err := tx.EncodeUnsigned()
		require.NoError(t, err)
		require.Equal(t, types.FrontierSigner{}.Hash(etx), crypto.Keccak256Hash(enc))
		require.Equal(t, crypto.Keccak256Hash(enc), tx.SigHash(nil))

		var fields []interface{}
		require.NoError(t, rlp.DecodeBytes(enc, &fields))
		require.Len(t, fields, 6)
	})

	t.Run("should hash the protected encoding like the EIP-155 signer", func(t *testing.T) {
		chainID := big.NewInt(1)
		enc, err := tx.EncodeProtected(chainID)
		require.NoError(t, err)
		require.Equal(t, types.NewEIP155Signer(chainID).Hash(etx), crypto.Keccak256Hash(enc))
		require.Equal(t, crypto.Keccak256Hash(enc), tx.SigHash(chainID))

		var fields [][]byte
		require.NoError(t, rlp.DecodeBytes(enc, &fields))
		require.Len(t, fields, 9)
		require.Equal(t, []byte{1}, fields[6])
		require.Empty(t, fields[7])
		require.Empty(t, fields[8])
	})

	t.Run("should reject a negative chain id", func(t *testing.T) {
		_, err := tx.EncodeProtected(big.NewInt(-1))
		require.ErrorIs(t, err, ErrInvalidChainID)
	})
}

func TestDecodeDoesNotHashWhenQuiet(t *testing.T) {
	root := log.Root()
	log.SetDefault(log.NewLogger(log.DiscardHandler()))
	t.Cleanup(func() { log.SetDefault(root) })

	enc, err := mainnetTx(t).MarshalBinary()
	require.NoError(t, err)

	tx, err := DecodeTransaction(enc)
	require.NoError(t, err)
	require.Nil(t, tx.hash.Load())

	_, err = tx.Sender()
	require.NoError(t, err)
	require.Nil(t, tx.hash.Load())
}
