package ethtx

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
)

var (
	big1  = big.NewInt(1)
	big8  = big.NewInt(8)
	big17 = big.NewInt(17)
	big37 = big.NewInt(37)

	secp256k1N     = crypto.S256().Params().N
	secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)

	// maxChainID is the exclusive upper bound for signing chain ids.
	maxChainID = new(big.Int).Sub(new(big.Int).Lsh(big1, 63), big.NewInt(18))
)

// NullAddress is the sender of a transaction whose r and s are both zero.
var NullAddress = common.BytesToAddress(bytes.Repeat([]byte{0xff}, common.AddressLength))

// SigKind classifies the signature values of a transaction.
type SigKind uint8

const (
	// Unsigned marks r = s = 0. v carries the chain id.
	Unsigned SigKind = iota
	// Legacy marks v in {27, 28}, signed without a chain id.
	Legacy
	// Protected marks an EIP-155 signature, v = parity + 8 + 2 * chainID.
	Protected
)

func (k SigKind) String() string {
	switch k {
	case Unsigned:
		return "unsigned"
	case Legacy:
		return "legacy"
	case Protected:
		return "protected"
	default:
		return fmt.Sprintf("SigKind(%d)", uint8(k))
	}
}

// Signature is the classification of v, r, s.
type Signature struct {
	Kind    SigKind
	Parity  byte     // 27 or 28; zero for Unsigned
	ChainID *big.Int // nil for Legacy
}

// Signature classifies the signature values.
func (tx *Transaction) Signature() (Signature, error) {
	v := tx.v
	if tx.r.Sign() == 0 && tx.s.Sign() == 0 {
		return Signature{Kind: Unsigned, ChainID: new(big.Int).Set(v)}, nil
	}
	if v.IsUint64() && (v.Uint64() == 27 || v.Uint64() == 28) {
		return Signature{Kind: Legacy, Parity: byte(v.Uint64())}, nil
	}
	if v.Cmp(big37) >= 0 {
		chainID := new(big.Int).Sub(v, big1)
		chainID.Rsh(chainID, 1)
		chainID.Sub(chainID, big17)

		parity := new(big.Int).Lsh(chainID, 1)
		parity.Sub(v, parity)
		parity.Sub(parity, big8)
		if parity.IsUint64() && (parity.Uint64() == 27 || parity.Uint64() == 28) {
			return Signature{Kind: Protected, Parity: byte(parity.Uint64()), ChainID: chainID}, nil
		}
	}
	return Signature{}, fmt.Errorf("%w: %v", ErrInvalidV, v)
}

// ChainID returns the chain id carried by v: the raw v of an unsigned
// transaction, the EIP-155 chain id of a protected one, nil otherwise.
func (tx *Transaction) ChainID() *big.Int {
	sig, err := tx.Signature()
	if err != nil {
		return nil
	}
	return sig.ChainID
}

// SigHash returns the hash signed under chainID, or the pre-EIP-155 hash when
// chainID is nil.
func (tx *Transaction) SigHash(chainID *big.Int) common.Hash {
	if chainID == nil {
		return rlpHash(tx.unsignedFields())
	}
	return rlpHash(tx.protectedFields(chainID))
}

// Sign signs the transaction in place and returns it. key is 32 raw bytes,
// hex text or WIF. A nil chainID produces a legacy signature.
func (tx *Transaction) Sign(key []byte, chainID *big.Int) (*Transaction, error) {
	raw, err := normalizeKey(key)
	if err != nil {
		return nil, err
	}
	prv, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return tx.SignECDSA(prv, chainID)
}

// SignECDSA is Sign for a parsed key.
func (tx *Transaction) SignECDSA(prv *ecdsa.PrivateKey, chainID *big.Int) (*Transaction, error) {
	if prv == nil || prv.D == nil || prv.D.Sign() == 0 {
		return nil, ErrZeroPrivateKey
	}
	if chainID != nil && (chainID.Cmp(big1) < 0 || chainID.Cmp(maxChainID) >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChainID, chainID)
	}

	h := tx.SigHash(chainID)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}

	v := big.NewInt(int64(sig[crypto.RecoveryIDOffset]) + 27)
	if chainID != nil {
		v.Add(v, big8)
		v.Add(v, new(big.Int).Lsh(chainID, 1))
	}
	tx.v = v
	tx.r = new(big.Int).SetBytes(sig[:32])
	tx.s = new(big.Int).SetBytes(sig[32:64])
	tx.hash.Store(nil)

	from := crypto.PubkeyToAddress(prv.PublicKey)
	tx.from.Store(&from)

	if log.Root().Enabled(context.Background(), log.LevelTrace) {
		log.Trace("Signed transaction", "hash", tx.Hash(), "from", from, "chainid", chainID)
	}
	return tx, nil
}

// Sender returns the address that signed the transaction, recovering it on
// first use.
func (tx *Transaction) Sender() (common.Address, error) {
	if from := tx.from.Load(); from != nil {
		return *from, nil
	}
	addr, err := tx.recoverSender()
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(&addr)
	return addr, nil
}

// SetSender overrides the cached sender without checking it.
func (tx *Transaction) SetSender(addr common.Address) {
	tx.from.Store(&addr)
}

func (tx *Transaction) recoverSender() (common.Address, error) {
	sig, err := tx.Signature()
	if err != nil {
		return common.Address{}, err
	}
	if sig.Kind == Unsigned {
		return NullAddress, nil
	}
	if tx.r.Sign() <= 0 || tx.s.Sign() <= 0 || tx.r.Cmp(secp256k1N) >= 0 || tx.s.Cmp(secp256k1N) >= 0 {
		return common.Address{}, ErrInvalidSig
	}

	var chainID *big.Int
	if sig.Kind == Protected {
		chainID = sig.ChainID
	}
	addr, err := recoverPlain(tx.SigHash(chainID), tx.r, tx.s, sig.Parity)
	if err != nil {
		return common.Address{}, err
	}
	if log.Root().Enabled(context.Background(), log.LevelTrace) {
		log.Trace("Recovered transaction sender", "hash", tx.Hash(), "from", addr, "kind", sig.Kind)
	}
	return addr, nil
}

func recoverPlain(sighash common.Hash, R, S *big.Int, parity byte) (common.Address, error) {
	r, s := R.Bytes(), S.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[crypto.RecoveryIDOffset] = parity - 27

	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, ErrInvalidSig
	}
	if isZero(pub[1:]) {
		return common.Address{}, ErrZeroPrivateKey
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
