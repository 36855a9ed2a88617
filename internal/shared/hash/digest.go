package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	gohash "hash"

	"golang.org/x/crypto/blake2b"
)

var _ Hasher = (*digestHasher)(nil)

type digestHasher struct {
	newHash func() gohash.Hash
}

// NewSHA256 creates a SHA-256 based Hasher.
func NewSHA256() Hasher {
	return &digestHasher{newHash: sha256.New}
}

// NewBLAKE2b creates a BLAKE2b based Hasher producing size-byte digests.
func NewBLAKE2b(size int) (Hasher, error) {
	if size == 0 {
		size = blake2b.Size256
	}
	if size < 1 || size > blake2b.Size {
		return nil, fmt.Errorf("hash: blake2b size must be between 1 and %d, got %d", blake2b.Size, size)
	}

	// validate once so Sum never has to return an error
	if _, err := blake2b.New(size, nil); err != nil {
		return nil, fmt.Errorf("hash: failed to init blake2b: %w", err)
	}

	return &digestHasher{newHash: func() gohash.Hash {
		h, _ := blake2b.New(size, nil)
		return h
	}}, nil
}

func (d *digestHasher) Sum(parts ...string) string {
	h := d.newHash()
	var lenBuf [binary.MaxVarintLen64]byte
	for _, part := range parts {
		n := binary.PutUvarint(lenBuf[:], uint64(len(part)))
		h.Write(lenBuf[:n])
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
