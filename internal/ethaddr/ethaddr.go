// Package ethaddr validates Ethereum addresses and computes EIP-55 checksums.
package ethaddr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Validation errors.
var (
	ErrInvalidLength   = errors.New("address must be 0x followed by 40 hex characters")
	ErrInvalidHex      = errors.New("address contains non-hex characters")
	ErrInvalidChecksum = errors.New("address checksum mismatch")
)

const hexLen = 40

// Checksum returns the EIP-55 mixed-case form of addr. The input may be in
// any case, with or without the 0x prefix.
func Checksum(addr string) (string, error) {
	raw, err := normalize(addr)
	if err != nil {
		return "", err
	}
	return checksum(raw), nil
}

// Validate reports whether addr is a well-formed address. All-lowercase and
// all-uppercase addresses carry no checksum and are accepted as is; mixed-case
// addresses must match their EIP-55 checksum.
func Validate(addr string) error {
	raw, err := normalize(addr)
	if err != nil {
		return err
	}
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if "0x"+body != checksum(raw) {
		return fmt.Errorf("%w: %s", ErrInvalidChecksum, addr)
	}
	return nil
}

// normalize returns the lowercase hex body of addr.
func normalize(addr string) (string, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(body) != hexLen {
		return "", ErrInvalidLength
	}
	lower := strings.ToLower(body)
	if _, err := hex.DecodeString(lower); err != nil {
		return "", ErrInvalidHex
	}
	return lower, nil
}

func checksum(lower string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := make([]byte, 0, hexLen+2)
	out = append(out, '0', 'x')
	for i := 0; i < hexLen; i++ {
		c := lower[i]
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		nibble &= 0x0f
		if c >= 'a' && c <= 'f' && nibble >= 8 {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
