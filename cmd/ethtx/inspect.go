package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/veritas-L2/ethtx"
)

var blockFlag = &cli.Uint64Flag{
	Name:  "block",
	Usage: "Check the signature against the low-s rules of this block",
}

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Decode a raw transaction and print its fields",
	ArgsUsage: "<rawtx>",
	Flags:     []cli.Flag{blockFlag},
	Action:    inspectTransaction,
}

func decodeArg(arg string) (*ethtx.Transaction, error) {
	return ethtx.DecodeTransaction(common.FromHex(strings.TrimSpace(arg)))
}

func inspectTransaction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one raw transaction")
	}
	tx, err := decodeArg(ctx.Args().First())
	if err != nil {
		return err
	}

	if ctx.IsSet(blockFlag.Name) {
		policy := cfg.Chain.Rules().LowSPolicy(new(big.Int).SetUint64(ctx.Uint64(blockFlag.Name)))
		if err := tx.CheckLowS(policy); err != nil {
			return fmt.Errorf("%v rules: %w", policy, err)
		}
	}

	d, err := tx.LogDict()
	if err != nil {
		return err
	}
	sig, err := tx.Signature()
	if err != nil {
		return err
	}
	d["kind"] = sig.Kind.String()
	if id := tx.ChainID(); id != nil {
		d["chainid"] = id
	}
	if created, err := tx.Creates(); err == nil && created != nil {
		d["creates"] = created.Hex()
	}
	d["intrinsicgas"] = tx.IntrinsicGas()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
