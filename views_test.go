package ethtx

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDict(t *testing.T) {
	tx := newTestTx(t, testTo.Bytes(), []byte{0xca, 0xfe})
	_, err := tx.SignECDSA(testKey, big.NewInt(1))
	require.NoError(t, err)

	d, err := tx.ToDict()
	require.NoError(t, err)

	h := tx.Hash()
	v, r, s := tx.RawSignatureValues()
	require.Equal(t, map[string]interface{}{
		"nonce":    big.NewInt(3),
		"gasprice": big.NewInt(20_000_000_000),
		"startgas": big.NewInt(100_000),
		"to":       testTo.Bytes(),
		"value":    big.NewInt(1000),
		"data":     []byte{0xca, 0xfe},
		"v":        v,
		"r":        r,
		"s":        s,
		"sender":   testAddr.Bytes(),
		"hash":     hex.EncodeToString(h[:]),
	}, d)
}

func TestLogDict(t *testing.T) {
	tx := newTestTx(t, nil, []byte{0xca, 0xfe})
	_, err := tx.SignECDSA(testKey, nil)
	require.NoError(t, err)

	d, err := tx.LogDict()
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(testAddr.Bytes()), d["sender"])
	require.Equal(t, "", d["to"])
	require.Equal(t, "cafe", d["data"])
	require.Equal(t, big.NewInt(3), d["nonce"])
}

func TestViewsNeedASender(t *testing.T) {
	tx, err := NewSignedTransaction(big.NewInt(0), big.NewInt(0), big.NewInt(21000), nil, big.NewInt(0), nil, big.NewInt(30), big.NewInt(1), big.NewInt(1))
	require.NoError(t, err)

	_, err = tx.ToDict()
	require.ErrorIs(t, err, ErrInvalidV)
	_, err = tx.LogDict()
	require.ErrorIs(t, err, ErrInvalidV)
}

func TestString(t *testing.T) {
	tx := mainnetTx(t)
	h := tx.Hash()
	require.Equal(t, "<Transaction("+hex.EncodeToString(h[:])[:4]+")>", tx.String())
	require.Equal(t, tx.String(), fmt.Sprint(tx))
}
