// Package ckbhash implements the CKB default hash: blake2b with a 32 byte
// digest and the "ckb-default-hash" personalization.
package ckbhash

import (
	"hash"

	"github.com/ethereum/go-ethereum/common"
	"github.com/minio/blake2b-simd"
)

// Size is the digest size in bytes.
const Size = 32

var personalization = []byte("ckb-default-hash")

// New returns a fresh hasher.
func New() hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: Size, Person: personalization})
	if err != nil {
		// only reachable with an invalid static config
		panic(err)
	}
	return h
}

// Blake256 hashes the concatenation of the given byte strings.
func Blake256(data ...[]byte) common.Hash {
	h := New()
	for _, d := range data {
		h.Write(d)
	}
	return common.BytesToHash(h.Sum(nil))
}
