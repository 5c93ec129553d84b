package substrate

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const PublicKeySize = 32

var ss58Prefix = []byte("SS58PRE")

var ErrInvalidAddress = errors.New("invalid ss58 address")

type PublicKey [PublicKeySize]byte

// DecodeSS58 returns the account public key and the network prefix of an
// SS58 address. Only 32-byte account ids are supported.
func DecodeSS58(address string) (PublicKey, uint16, error) {
	var pubkey PublicKey

	data := base58.Decode(address)
	if len(data) < 3 {
		return pubkey, 0, ErrInvalidAddress
	}

	var prefix uint16
	prefixLen := 1
	if data[0] < 64 {
		prefix = uint16(data[0])
	} else if data[0] < 128 {
		prefixLen = 2
		lower := (data[0]&0x3f)<<2 | data[1]>>6
		upper := data[1] & 0x3f
		prefix = uint16(lower) | uint16(upper)<<8
	} else {
		return pubkey, 0, ErrInvalidAddress
	}

	if len(data) != prefixLen+PublicKeySize+2 {
		return pubkey, 0, ErrInvalidAddress
	}

	body := data[:len(data)-2]
	if !bytes.Equal(ss58Checksum(body), data[len(data)-2:]) {
		return pubkey, 0, ErrInvalidAddress
	}

	copy(pubkey[:], body[prefixLen:])
	return pubkey, prefix, nil
}

// EncodeSS58 encodes a public key for a network prefix lower than 64.
func EncodeSS58(pubkey PublicKey, prefix uint8) (string, error) {
	if prefix >= 64 {
		return "", errors.New("prefix must be lower than 64")
	}

	body := append([]byte{prefix}, pubkey[:]...)
	return base58.Encode(append(body, ss58Checksum(body)...)), nil
}

func ss58Checksum(body []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Prefix)
	h.Write(body)
	return h.Sum(nil)[:2]
}
