package translator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vulpemventures/go-godwoken/address"
	"github.com/vulpemventures/go-godwoken/deposit"
	"github.com/vulpemventures/go-godwoken/script"
)

// Omni lock args: auth flag | auth content | omni lock flags.
//
//	0x01 (ethereum) | 20 byte address | 0x00 (owner mode)
const (
	omniAuthEthereum byte = 0x01
	omniModeOwner    byte = 0x00
	omniArgsSize          = 1 + common.AddressLength + 1
)

// ShortAddressLength is the size of a layer 2 short address.
const ShortAddressLength = 20

// parseEthAddress accepts only 0x prefixed, 40 hex digits addresses. Case
// is ignored, addresses are always derived from their bytes.
func parseEthAddress(ethAddress string) (common.Address, error) {
	if len(ethAddress) != 2+2*common.AddressLength || !strings.HasPrefix(ethAddress, "0x") {
		return common.Address{}, fmt.Errorf(
			"%w: eth address must be 0x followed by 40 hex digits, got %q",
			ErrInvalidInput, ethAddress,
		)
	}
	b, err := hexutil.Decode(ethAddress)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: eth address %q: %v", ErrInvalidInput, ethAddress, err)
	}
	return common.BytesToAddress(b), nil
}

// Layer1Script returns the omni lock on layer 1 owned by the Ethereum
// address.
func (t *Translator) Layer1Script(ethAddress string) (*script.Script, error) {
	s, err := t.ready("Layer1Script")
	if err != nil {
		return nil, err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return nil, err
	}
	return s.layer1Script(eth), nil
}

func (s *readyState) layer1Script(eth common.Address) *script.Script {
	args := make([]byte, 0, omniArgsSize)
	args = append(args, omniAuthEthereum)
	args = append(args, eth.Bytes()...)
	args = append(args, omniModeOwner)
	return s.deployment.OmniLock.Script(args)
}

// EthAddressToLayer1Address returns the layer 1 omni lock address owned by
// the Ethereum address.
func (t *Translator) EthAddressToLayer1Address(ethAddress string) (string, error) {
	s, err := t.ready("EthAddressToLayer1Address")
	if err != nil {
		return "", err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return "", err
	}
	return address.FromScript(s.layer1Script(eth), s.net)
}

// EthAddressFromLayer1Address is the inverse of EthAddressToLayer1Address.
func (t *Translator) EthAddressFromLayer1Address(layer1Address string) (common.Address, error) {
	s, err := t.ready("EthAddressFromLayer1Address")
	if err != nil {
		return common.Address{}, err
	}
	lock, err := address.ToScript(layer1Address, s.net)
	if err != nil {
		return common.Address{}, err
	}

	omni := s.deployment.OmniLock
	if lock.CodeHash != omni.CodeHash || lock.HashType != omni.HashType {
		return common.Address{}, fmt.Errorf("%w: %s is not an omni lock address",
			ErrInvalidInput, layer1Address)
	}
	if len(lock.Args) != omniArgsSize ||
		lock.Args[0] != omniAuthEthereum ||
		lock.Args[omniArgsSize-1] != omniModeOwner {
		return common.Address{}, fmt.Errorf("%w: %s is not owned by an ethereum address",
			ErrInvalidInput, layer1Address)
	}
	return common.BytesToAddress(lock.Args[1 : 1+common.AddressLength]), nil
}

// LockHashFromAddress returns the lock hash of a layer 1 address.
func (t *Translator) LockHashFromAddress(layer1Address string) (common.Hash, error) {
	s, err := t.ready("LockHashFromAddress")
	if err != nil {
		return common.Hash{}, err
	}
	lock, err := address.ToScript(layer1Address, s.net)
	if err != nil {
		return common.Hash{}, err
	}
	return lock.Hash(), nil
}

// Layer2EthLock returns the layer 2 account lock of the Ethereum address.
func (t *Translator) Layer2EthLock(ethAddress string) (*script.Script, error) {
	s, err := t.ready("Layer2EthLock")
	if err != nil {
		return nil, err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return nil, err
	}
	return s.layer2EthLock(eth), nil
}

// layer2EthLock args are the rollup type hash followed by the address.
func (s *readyState) layer2EthLock(eth common.Address) *script.Script {
	args := make([]byte, 0, common.HashLength+common.AddressLength)
	args = append(args, s.net.RollupTypeHash.Bytes()...)
	args = append(args, eth.Bytes()...)
	return s.deployment.EthAccountLock.Script(args)
}

// Layer2EthLockHash returns the hash of the layer 2 account lock of the
// Ethereum address, the key the account registry is indexed by.
func (t *Translator) Layer2EthLockHash(ethAddress string) (common.Hash, error) {
	s, err := t.ready("Layer2EthLockHash")
	if err != nil {
		return common.Hash{}, err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return common.Hash{}, err
	}
	return s.layer2EthLock(eth).Hash(), nil
}

// EthAddressToLayer2ShortAddress returns the first 20 bytes of the layer 2
// lock hash.
func (t *Translator) EthAddressToLayer2ShortAddress(ethAddress string) (hexutil.Bytes, error) {
	s, err := t.ready("EthAddressToLayer2ShortAddress")
	if err != nil {
		return nil, err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return nil, err
	}
	lockHash := s.layer2EthLock(eth).Hash()
	return hexutil.Bytes(common.CopyBytes(lockHash[:ShortAddressLength])), nil
}

// DepositLock returns the layer 1 deposit lock crediting the layer 2
// account of the Ethereum address, reclaimable by ownerLockHash.
func (t *Translator) DepositLock(ownerLockHash common.Hash, ethAddress string) (*script.Script, error) {
	s, err := t.ready("DepositLock")
	if err != nil {
		return nil, err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return nil, err
	}
	return t.depositLock(s, ownerLockHash, eth), nil
}

func (t *Translator) depositLock(s *readyState, ownerLockHash common.Hash, eth common.Address) *script.Script {
	args := deposit.LockArgs{
		OwnerLockHash: ownerLockHash,
		Layer2Lock:    *s.layer2EthLock(eth),
		CancelTimeout: t.cancelTimeout,
		RegistryID:    deposit.RegistryIDEth,
	}
	packed := args.Pack()

	lockArgs := make([]byte, 0, common.HashLength+len(packed))
	lockArgs = append(lockArgs, s.net.RollupTypeHash.Bytes()...)
	lockArgs = append(lockArgs, packed...)
	return s.deployment.DepositLock.Script(lockArgs)
}

// Layer2DepositAddress returns the layer 1 address to send funds to in
// order to credit the layer 2 account of the Ethereum address. The owner
// of ownerLockHash can reclaim the deposit once the cancel timeout expires.
func (t *Translator) Layer2DepositAddress(ownerLockHash common.Hash, ethAddress string) (string, error) {
	s, err := t.ready("Layer2DepositAddress")
	if err != nil {
		return "", err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return "", err
	}
	return address.FromScript(t.depositLock(s, ownerLockHash, eth), s.net)
}

// EthAddressToLayer2DepositAddress returns the deposit address whose owner
// is the layer 1 omni lock of the same Ethereum address.
func (t *Translator) EthAddressToLayer2DepositAddress(ethAddress string) (string, error) {
	s, err := t.ready("EthAddressToLayer2DepositAddress")
	if err != nil {
		return "", err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return "", err
	}
	owner := s.layer1Script(eth).Hash()
	return address.FromScript(t.depositLock(s, owner, eth), s.net)
}

// Layer2DepositAddressForOwner returns the deposit address reclaimable by
// the given layer 1 address.
func (t *Translator) Layer2DepositAddressForOwner(layer1Address, ethAddress string) (string, error) {
	s, err := t.ready("Layer2DepositAddressForOwner")
	if err != nil {
		return "", err
	}
	owner, err := address.ToScript(layer1Address, s.net)
	if err != nil {
		return "", err
	}
	eth, err := parseEthAddress(ethAddress)
	if err != nil {
		return "", err
	}
	return address.FromScript(t.depositLock(s, owner.Hash(), eth), s.net)
}

// ParseDepositAddress decodes a deposit address back into its lock args,
// checking it targets the loaded rollup.
func (t *Translator) ParseDepositAddress(depositAddress string) (*deposit.LockArgs, error) {
	s, err := t.ready("ParseDepositAddress")
	if err != nil {
		return nil, err
	}
	lock, err := address.ToScript(depositAddress, s.net)
	if err != nil {
		return nil, err
	}

	tmpl := s.deployment.DepositLock
	if lock.CodeHash != tmpl.CodeHash || lock.HashType != tmpl.HashType {
		return nil, fmt.Errorf("%w: %s is not a deposit lock address", ErrInvalidInput, depositAddress)
	}
	rollup := s.net.RollupTypeHash.Bytes()
	if !bytes.HasPrefix(lock.Args, rollup) {
		return nil, fmt.Errorf("%w: deposit address %s targets another rollup",
			ErrInvalidInput, depositAddress)
	}
	return deposit.Unpack(lock.Args[len(rollup):])
}
