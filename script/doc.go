// Package script defines the CKB script model and its canonical molecule
// encoding.
//
// A script is identified on chain by its hash: blake2b-256 with the
// "ckb-default-hash" personalization over the serialized script. Two
// scripts are the same lock if and only if their hashes are equal, so any
// change in the serialization produces a different, but still valid
// looking, lock.
//
//	s := script.New(codeHash, script.HashTypeType, args)
//	lockHash := s.Hash()
package script
