package ethtx

import (
	"errors"
	"fmt"
)

// ErrInvalidTransaction is the single rejection kind. Every error returned by
// construction, signing and sender recovery matches it with errors.Is.
var ErrInvalidTransaction = errors.New("invalid transaction")

var (
	ErrValueOutOfRange    = fmt.Errorf("%w: values way too high", ErrInvalidTransaction)
	ErrIntrinsicGas       = fmt.Errorf("%w: startgas too low", ErrInvalidTransaction)
	ErrInvalidRecipient   = fmt.Errorf("%w: recipient must be 20 bytes or empty", ErrInvalidTransaction)
	ErrInvalidV           = fmt.Errorf("%w: invalid v value", ErrInvalidTransaction)
	ErrInvalidSig         = fmt.Errorf("%w: invalid signature values", ErrInvalidTransaction)
	ErrInvalidLowS        = fmt.Errorf("%w: invalid signature s value", ErrInvalidTransaction)
	ErrZeroPrivateKey     = fmt.Errorf("%w: zero privkey cannot sign", ErrInvalidTransaction)
	ErrInvalidPrivateKey  = fmt.Errorf("%w: malformed private key", ErrInvalidTransaction)
	ErrInvalidChainID     = fmt.Errorf("%w: chain id out of range", ErrInvalidTransaction)
	ErrMalformedEncoding  = fmt.Errorf("%w: malformed encoding", ErrInvalidTransaction)
	ErrIndexOutOfRange    = errors.New("transaction index out of range")
	ErrInclusionNotProven = errors.New("transaction not included")
)
