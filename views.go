package ethtx

import (
	"encoding/hex"
	"fmt"
)

// ToDict returns the fields, the sender and the hex hash keyed by name.
func (tx *Transaction) ToDict() (map[string]interface{}, error) {
	from, err := tx.Sender()
	if err != nil {
		return nil, err
	}
	v, r, s := tx.RawSignatureValues()
	h := tx.Hash()
	return map[string]interface{}{
		"nonce":    tx.Nonce(),
		"gasprice": tx.GasPrice(),
		"startgas": tx.StartGas(),
		"to":       tx.toBytes(),
		"value":    tx.Value(),
		"data":     tx.Data(),
		"v":        v,
		"r":        r,
		"s":        s,
		"sender":   from.Bytes(),
		"hash":     hex.EncodeToString(h[:]),
	}, nil
}

// LogDict is ToDict with sender, to and data hex encoded.
func (tx *Transaction) LogDict() (map[string]interface{}, error) {
	d, err := tx.ToDict()
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"sender", "to", "data"} {
		d[name] = hex.EncodeToString(d[name].([]byte))
	}
	return d, nil
}

func (tx *Transaction) String() string {
	h := tx.Hash()
	return fmt.Sprintf("<Transaction(%x)>", h[:2])
}
