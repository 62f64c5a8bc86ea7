// Package deposit encodes the arguments of the Godwoken deposit lock.
//
// A deposit cell on layer 1 is locked by the deposit lock, whose args are
// the rollup type hash followed by a molecule DepositLockArgs table:
//
//	table DepositLockArgs {
//	    owner_lock_hash: Byte32,
//	    layer2_lock:     Script,
//	    cancel_timeout:  Uint64,
//	    registry_id:     Uint32,
//	}
//
// The deposit processing program parses these exact bytes to credit the
// layer 2 account and to allow the owner to reclaim the cell after the
// cancel timeout.
package deposit

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vulpemventures/go-godwoken/internal/molecule"
	"github.com/vulpemventures/go-godwoken/script"
)

// RegistryIDEth is the id of the Ethereum address registry.
const RegistryIDEth uint32 = 2

const lockArgsFields = 4

// ErrMalformedRecord is returned by Unpack for inputs not matching the
// DepositLockArgs layout.
var ErrMalformedRecord = script.ErrMalformedRecord

// LockArgs defines the arguments of a deposit lock.
type LockArgs struct {
	// OwnerLockHash is the hash of the layer 1 lock allowed to reclaim the
	// deposit after CancelTimeout.
	OwnerLockHash common.Hash
	// Layer2Lock is the lock of the layer 2 account to be credited.
	Layer2Lock    script.Script
	CancelTimeout Since
	RegistryID    uint32
}

// Pack returns the molecule encoding of the lock args.
func (a *LockArgs) Pack() []byte {
	return molecule.Table(
		a.OwnerLockHash.Bytes(),
		a.Layer2Lock.Serialize(),
		molecule.Uint64(uint64(a.CancelTimeout)),
		molecule.Uint32(a.RegistryID),
	)
}

// Unpack parses the molecule encoding of deposit lock args.
func Unpack(data []byte) (*LockArgs, error) {
	fields, err := molecule.ReadTable(data, lockArgsFields)
	if err != nil {
		return nil, fmt.Errorf("deposit lock args: %w", err)
	}

	if len(fields[0]) != common.HashLength {
		return nil, fmt.Errorf("%w: owner lock hash is %d bytes",
			ErrMalformedRecord, len(fields[0]))
	}
	layer2Lock, err := script.Deserialize(fields[1])
	if err != nil {
		return nil, fmt.Errorf("deposit layer2 lock: %w", err)
	}
	cancelTimeout, err := molecule.ReadUint64(fields[2])
	if err != nil {
		return nil, fmt.Errorf("deposit cancel timeout: %w", err)
	}
	registryID, err := molecule.ReadUint32(fields[3])
	if err != nil {
		return nil, fmt.Errorf("deposit registry id: %w", err)
	}

	return &LockArgs{
		OwnerLockHash: common.BytesToHash(fields[0]),
		Layer2Lock:    *layer2Lock,
		CancelTimeout: Since(cancelTimeout),
		RegistryID:    registryID,
	}, nil
}
