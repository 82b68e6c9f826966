package main

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/urfave/cli/v2"

	"github.com/veritas-L2/ethtx"
)

var (
	nonceFlag    = &cli.StringFlag{Name: "nonce", Usage: "Sender nonce", Value: "0"}
	gasPriceFlag = &cli.StringFlag{Name: "gasprice", Usage: "Gas price in wei", Value: "0"}
	gasFlag      = &cli.StringFlag{Name: "gas", Usage: "Gas limit (startgas)", Value: "21000"}
	toFlag       = &cli.StringFlag{Name: "to", Usage: "Recipient address; empty deploys a contract"}
	valueFlag    = &cli.StringFlag{Name: "value", Usage: "Value in wei", Value: "0"}
	dataFlag     = &cli.StringFlag{Name: "data", Usage: "Hex call data or contract code"}
	keyFlag      = &cli.StringFlag{Name: "key", Usage: "Private key as hex or WIF"}
	mnemonicFlag = &cli.StringFlag{Name: "mnemonic", Usage: "BIP-39 mnemonic to derive the key from"}
	hdPathFlag   = &cli.StringFlag{Name: "hdpath", Usage: "Derivation path used with --mnemonic", Value: "m/44'/60'/0'/0/0"}
	chainIDFlag  = &cli.Uint64Flag{Name: "chainid", Usage: "Chain id to sign for (defaults to the configured one)"}
	legacyFlag   = &cli.BoolFlag{Name: "legacy", Usage: "Sign without replay protection"}
)

var signCommand = &cli.Command{
	Name:  "sign",
	Usage: "Create and sign a transaction",
	Flags: []cli.Flag{
		nonceFlag,
		gasPriceFlag,
		gasFlag,
		toFlag,
		valueFlag,
		dataFlag,
		keyFlag,
		mnemonicFlag,
		hdPathFlag,
		chainIDFlag,
		legacyFlag,
	},
	Action: signTransaction,
}

func parseBig(ctx *cli.Context, flag *cli.StringFlag) (*big.Int, error) {
	n, ok := math.ParseBig256(ctx.String(flag.Name))
	if !ok {
		return nil, fmt.Errorf("invalid --%s: %q", flag.Name, ctx.String(flag.Name))
	}
	return n, nil
}

func signTransaction(ctx *cli.Context) error {
	var nums [4]*big.Int
	for i, flag := range []*cli.StringFlag{nonceFlag, gasPriceFlag, gasFlag, valueFlag} {
		n, err := parseBig(ctx, flag)
		if err != nil {
			return err
		}
		nums[i] = n
	}

	var to []byte
	if s := ctx.String(toFlag.Name); s != "" {
		to = common.FromHex(s)
	}
	tx, err := ethtx.NewTransaction(nums[0], nums[1], nums[2], to, nums[3], common.FromHex(ctx.String(dataFlag.Name)))
	if err != nil {
		return err
	}

	var chainID *big.Int
	switch {
	case ctx.Bool(legacyFlag.Name):
	case ctx.IsSet(chainIDFlag.Name):
		chainID = new(big.Int).SetUint64(ctx.Uint64(chainIDFlag.Name))
	default:
		chainID = cfg.Chain.SigningChainID()
	}

	switch {
	case ctx.IsSet(keyFlag.Name):
		_, err = tx.Sign([]byte(ctx.String(keyFlag.Name)), chainID)
	case ctx.IsSet(mnemonicFlag.Name):
		var prv *ecdsa.PrivateKey
		prv, err = deriveKey(ctx.String(mnemonicFlag.Name), ctx.String(hdPathFlag.Name))
		if err != nil {
			return err
		}
		_, err = tx.SignECDSA(prv, chainID)
	default:
		return errors.New("one of --key or --mnemonic is required")
	}
	if err != nil {
		return err
	}

	enc, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	from, err := tx.Sender()
	if err != nil {
		return err
	}
	log.Info("Signed transaction", "hash", tx.Hash(), "from", from, "chainid", chainID)

	fmt.Printf("%x\n", enc)
	return nil
}

func deriveKey(mnemonic, hdPath string) (*ecdsa.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet from mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(hdPath)
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path %q: %w", hdPath, err)
	}
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}
	prv, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	log.Debug("Derived signing key", "path", hdPath, "address", crypto.PubkeyToAddress(prv.PublicKey))
	return prv, nil
}
