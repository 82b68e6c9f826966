package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/veritas-L2/ethtx"
	"github.com/veritas-L2/ethtx/config"
	"github.com/veritas-L2/ethtx/txstore"
)

var (
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Transaction database directory (defaults to the configured one)",
	}
	proveFlag = &cli.IntFlag{
		Name:  "prove",
		Usage: "Also prove and verify the inclusion of the transaction at this index",
		Value: -1,
	}
)

var rootCommand = &cli.Command{
	Name:      "root",
	Usage:     "Compute the transactions root of raw transactions",
	ArgsUsage: "<rawtx> [<rawtx> ...]",
	Flags:     []cli.Flag{proveFlag},
	Action:    transactionsRoot,
}

var storeCommand = &cli.Command{
	Name:  "store",
	Usage: "Keep transactions in a local database",
	Flags: []cli.Flag{dataDirFlag},
	Subcommands: []*cli.Command{
		{
			Name:      "put",
			Usage:     "Store raw transactions",
			ArgsUsage: "<rawtx> [<rawtx> ...]",
			Action:    storePut,
		},
		{
			Name:      "get",
			Usage:     "Print a stored transaction",
			ArgsUsage: "<hash>",
			Action:    storeGet,
		},
		{
			Name:      "delete",
			Usage:     "Remove a stored transaction",
			ArgsUsage: "<hash>",
			Action:    storeDelete,
		},
	},
}

var dumpConfigCommand = &cli.Command{
	Name:  "dumpconfig",
	Usage: "Print the effective configuration",
	Action: func(ctx *cli.Context) error {
		out, err := config.Dump(&cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func decodeArgs(ctx *cli.Context) (ethtx.Transactions, error) {
	if ctx.NArg() == 0 {
		return nil, errors.New("expected at least one raw transaction")
	}
	txs := make(ethtx.Transactions, 0, ctx.NArg())
	for i, arg := range ctx.Args().Slice() {
		tx, err := decodeArg(arg)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func transactionsRoot(ctx *cli.Context) error {
	txs, err := decodeArgs(ctx)
	if err != nil {
		return err
	}
	root := ethtx.DeriveRoot(txs)

	if index := ctx.Int(proveFlag.Name); index >= 0 {
		proof, err := ethtx.ProveInclusion(txs, index)
		if err != nil {
			return err
		}
		tx, err := ethtx.VerifyInclusion(root, index, proof)
		if err != nil {
			return err
		}
		log.Info("Verified inclusion", "index", index, "hash", tx.Hash(), "nodes", len(proof.Serialize()))
	}

	fmt.Println(root.Hex())
	return nil
}

func openStore(ctx *cli.Context) (*txstore.Store, func(), error) {
	dir := cfg.Store.DataDir
	if ctx.IsSet(dataDirFlag.Name) {
		dir = ctx.String(dataDirFlag.Name)
	}
	db, err := txstore.OpenDatabase(dir)
	if err != nil {
		return nil, nil, err
	}
	return txstore.New(db), func() { db.Close() }, nil
}

func parseHash(ctx *cli.Context) (common.Hash, error) {
	if ctx.NArg() != 1 {
		return common.Hash{}, errors.New("expected one transaction hash")
	}
	b := common.FromHex(ctx.Args().First())
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid hash %q", ctx.Args().First())
	}
	return common.BytesToHash(b), nil
}

func storePut(ctx *cli.Context) error {
	txs, err := decodeArgs(ctx)
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	for _, tx := range txs {
		hash, err := store.Put(tx)
		if err != nil {
			return err
		}
		fmt.Println(hash.Hex())
	}
	return nil
}

func storeGet(ctx *cli.Context) error {
	hash, err := parseHash(ctx)
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	tx, err := store.Get(hash)
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
	fmt.Printf("%x\n", enc)
	log.Info("Loaded transaction", "hash", hash, "from", from)
	return nil
}

func storeDelete(ctx *cli.Context) error {
	hash, err := parseHash(ctx)
	if err != nil {
		return err
	}
	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	return store.Delete(hash)
}
