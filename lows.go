package ethtx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LowSPolicy selects how strictly the s value of a signature is checked.
type LowSPolicy uint8

const (
	// LowSNone accepts any s.
	LowSNone LowSPolicy = iota
	// LowSHomestead rejects s > N/2 and s == 0.
	LowSHomestead
	// LowSMetropolis rejects s > N/2.
	LowSMetropolis
)

func (p LowSPolicy) String() string {
	switch p {
	case LowSNone:
		return "none"
	case LowSHomestead:
		return "homestead"
	case LowSMetropolis:
		return "metropolis"
	default:
		return fmt.Sprintf("LowSPolicy(%d)", uint8(p))
	}
}

// CheckLowS applies policy to the s value.
func (tx *Transaction) CheckLowS(policy LowSPolicy) error {
	switch policy {
	case LowSHomestead:
		if tx.s.Cmp(secp256k1halfN) > 0 || tx.s.Sign() == 0 {
			return fmt.Errorf("%w: %v", ErrInvalidLowS, tx.s)
		}
	case LowSMetropolis:
		if tx.s.Cmp(secp256k1halfN) > 0 {
			return fmt.Errorf("%w: %v", ErrInvalidLowS, tx.s)
		}
	}
	return nil
}

// Verify checks s under policy and returns the sender.
func (tx *Transaction) Verify(policy LowSPolicy) (common.Address, error) {
	if err := tx.CheckLowS(policy); err != nil {
		return common.Address{}, err
	}
	return tx.Sender()
}

// Rules holds the fork blocks that switch the low-s policy. A nil block is
// never reached.
type Rules struct {
	HomesteadBlock  *big.Int
	MetropolisBlock *big.Int
}

// MainnetRules are the mainnet fork blocks.
var MainnetRules = Rules{
	HomesteadBlock:  big.NewInt(1_150_000),
	MetropolisBlock: big.NewInt(4_370_000),
}

// LowSPolicy returns the policy in force at block number.
func (r Rules) LowSPolicy(number *big.Int) LowSPolicy {
	switch {
	case isForked(r.MetropolisBlock, number):
		return LowSMetropolis
	case isForked(r.HomesteadBlock, number):
		return LowSHomestead
	default:
		return LowSNone
	}
}

func isForked(fork, head *big.Int) bool {
	if fork == nil || head == nil {
		return false
	}
	return fork.Cmp(head) <= 0
}
