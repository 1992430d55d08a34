// Package roundid generates sortable identifiers for rounds of play.
//
// IDs are UUIDv7 values encoded as 26 characters of Crockford base32, so
// they sort lexicographically by creation time and are safe to embed in
// log lines and file names.
package roundid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet (no i, l, o or u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh round ID: a UUIDv7 encoded as 26 base32 characters.
func New() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp in the first 6 bytes keeps IDs sortable.
	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if _, err := rand.Read(uuid[6:]); err != nil {
		panic("roundid: " + err.Error())
	}

	// Version 7, variant 10.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid)
}

// encodeBase32 packs 128 bits into 26 characters, five bits per character,
// most significant bits first, zero padded at the tail.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	var acc, bits uint
	i := 0
	for _, b := range data {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[i] = alphabet[(acc>>bits)&0x1f]
			i++
		}
	}
	out[i] = alphabet[(acc<<(5-bits))&0x1f]
	return string(out[:])
}

// Validate checks that id is a well-formed round ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("round ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
