package ethtx

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

const (
	wifMainnetVersion = 0x80
	wifTestnetVersion = 0xef
	wifCompressedFlag = 0x01
)

// normalizeKey returns the 32 raw bytes of a private key given as raw bytes,
// hex text or WIF.
func normalizeKey(key []byte) ([]byte, error) {
	if len(key) == 32 {
		if isZero(key) {
			return nil, ErrZeroPrivateKey
		}
		return key, nil
	}
	return ParsePrivateKey(string(key))
}

// ParsePrivateKey decodes a private key written as 64 hex characters, with
// or without 0x, or in wallet import format.
func ParsePrivateKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrZeroPrivateKey
	}

	var (
		raw []byte
		err error
	)
	if has0xPrefix(s) || len(s) == 64 {
		raw, err = hex.DecodeString(strip0xPrefix(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
		}
	} else {
		raw, err = decodeWIF(s)
		if err != nil {
			return nil, err
		}
	}

	if len(raw) != 32 {
		return nil, fmt.Errorf("%w: have %d bytes", ErrInvalidPrivateKey, len(raw))
	}
	if isZero(raw) {
		return nil, ErrZeroPrivateKey
	}
	return raw, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func strip0xPrefix(s string) string {
	if has0xPrefix(s) {
		return s[2:]
	}
	return s
}

func decodeWIF(s string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if version != wifMainnetVersion && version != wifTestnetVersion {
		return nil, fmt.Errorf("%w: wif version %#x", ErrInvalidPrivateKey, version)
	}
	switch {
	case len(payload) == 32:
		return payload, nil
	case len(payload) == 33 && payload[32] == wifCompressedFlag:
		return payload[:32], nil
	default:
		return nil, fmt.Errorf("%w: wif payload of %d bytes", ErrInvalidPrivateKey, len(payload))
	}
}
