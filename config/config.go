// Package config loads the TOML settings of the ethtx tool.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"math/big"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/veritas-L2/ethtx"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type Config struct {
	Chain ChainConfig
	Store StoreConfig
	Log   LogConfig
}

// ChainConfig selects the chain id used for signing and the blocks at which
// the low-s rules change. A nil block is never reached.
type ChainConfig struct {
	ChainID         uint64 // zero signs without replay protection
	HomesteadBlock  *uint64 `toml:",omitempty"`
	MetropolisBlock *uint64 `toml:",omitempty"`
}

type StoreConfig struct {
	DataDir string
}

type LogConfig struct {
	Verbosity int    // 0 silent ... 5 trace
	Format    string `toml:",omitempty"` // terminal, logfmt or json
}

// Default returns the mainnet settings.
func Default() Config {
	homestead, metropolis := ethtx.MainnetRules.HomesteadBlock.Uint64(), ethtx.MainnetRules.MetropolisBlock.Uint64()
	return Config{
		Chain: ChainConfig{
			ChainID:         1,
			HomesteadBlock:  &homestead,
			MetropolisBlock: &metropolis,
		},
		Store: StoreConfig{
			DataDir: "ethtx-data",
		},
		Log: LogConfig{
			Verbosity: 3,
			Format:    "terminal",
		},
	}
}

// Load decodes file over cfg. Keys missing from the file keep the values
// already in cfg.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// Dump returns the TOML encoding of cfg.
func Dump(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// Rules returns the low-s fork schedule.
func (c ChainConfig) Rules() ethtx.Rules {
	return ethtx.Rules{
		HomesteadBlock:  toBig(c.HomesteadBlock),
		MetropolisBlock: toBig(c.MetropolisBlock),
	}
}

// SigningChainID returns the chain id to sign with, nil for unprotected
// signatures.
func (c ChainConfig) SigningChainID() *big.Int {
	if c.ChainID == 0 {
		return nil
	}
	return new(big.Int).SetUint64(c.ChainID)
}

func toBig(n *uint64) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).SetUint64(*n)
}
