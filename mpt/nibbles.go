package mpt

import "fmt"

type Nibble byte

func IsNibble(nibble byte) bool {
	return nibble < 16
}

func FromNibbleByte(n byte) (Nibble, error) {
	if !IsNibble(n) {
		return 0, fmt.Errorf("non-nibble byte: %v", n)
	}
	return Nibble(n), nil
}

// FromNibbleBytes converts a slice of bytes each holding one nibble.
func FromNibbleBytes(nibbles []byte) ([]Nibble, error) {
	ns := make([]Nibble, 0, len(nibbles))
	for _, n := range nibbles {
		nibble, err := FromNibbleByte(n)
		if err != nil {
			return nil, fmt.Errorf("contains non-nibble byte: %w", err)
		}
		ns = append(ns, nibble)
	}
	return ns, nil
}

// FromBytes splits every byte of key into its high and low nibble.
func FromBytes(key []byte) []Nibble {
	ns := make([]Nibble, 0, len(key)*2)
	for _, b := range key {
		ns = append(ns, Nibble(b>>4), Nibble(b%16))
	}
	return ns
}

// ToPrefixed prepends the hex-prefix flag nibbles to ns.
func ToPrefixed(ns []Nibble, isLeafNode bool) []Nibble {
	// odd number of nibbles
	var prefix []Nibble
	if len(ns)%2 > 0 {
		prefix = []Nibble{1}
	} else {
		prefix = []Nibble{0, 0}
	}

	prefixed := make([]Nibble, 0, len(prefix)+len(ns))
	prefixed = append(prefixed, prefix...)
	prefixed = append(prefixed, ns...)

	if isLeafNode {
		prefixed[0] += 2
	}

	return prefixed
}

// ToBytes packs an even number of nibbles into bytes.
func ToBytes(ns []Nibble) []byte {
	buf := make([]byte, 0, len(ns)/2)
	for i := 0; i+1 < len(ns); i += 2 {
		buf = append(buf, byte(ns[i]<<4)|byte(ns[i+1]))
	}
	return buf
}

// PrefixMatchedLen returns the number of leading nibbles node1 and node2 share.
func PrefixMatchedLen(node1 []Nibble, node2 []Nibble) int {
	matched := 0
	for i := 0; i < len(node1) && i < len(node2); i++ {
		if node1[i] != node2[i] {
			break
		}
		matched++
	}
	return matched
}
