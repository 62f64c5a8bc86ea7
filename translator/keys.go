package translator

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// EthAddressFromPublicKey returns the Ethereum address of a secp256k1 key:
// the last 20 bytes of the keccak256 of the uncompressed point.
func EthAddressFromPublicKey(pub *btcec.PublicKey) common.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	return common.BytesToAddress(h.Sum(nil)[12:])
}

// EthAddressFromPrivateKey returns the Ethereum address of a secp256k1
// private key.
func EthAddressFromPrivateKey(priv *btcec.PrivateKey) common.Address {
	return EthAddressFromPublicKey(priv.PubKey())
}
