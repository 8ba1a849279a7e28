// Package binary provides offset-cursor helpers for the little-endian,
// fixed-layout account and instruction encodings used by on-chain programs.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
	"strings"
)

// DiscriminatorSize is the length of the 8-byte type tag that prefixes
// account data and anchor-style instruction payloads.
const DiscriminatorSize = 8

func PutDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst, v[:DiscriminatorSize])
	*offset += DiscriminatorSize
}

func GetDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, DiscriminatorSize)
	copy(*dst, src)
	*offset += DiscriminatorSize
}

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst, src)
	*offset += ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst, v)
	*offset += 2
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		dst[0] = 1
	}
	*offset += 1
}

// PutFixedString writes a string into a fixed-width field, padding with
// zero bytes. Longer values are truncated to the field width.
func PutFixedString(dst []byte, v string, length int, offset *int) {
	if len(v) > length {
		v = v[:length]
	}
	copy(dst, v)
	*offset += length
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src)
	*offset += ed25519.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src)
	*offset += 2
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) {
	*dst = src[0] == 1
	*offset += 1
}

func GetFixedString(src []byte, dst *string, length int, offset *int) {
	*dst = strings.TrimRight(string(src[:length]), "\x00")
	*offset += length
}
