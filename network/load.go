package network

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const devnetName = "devnet"

// LoadFile reads devnet parameters from a YAML file.
//
//	name: devnet
//	rpc_url: http://127.0.0.1:8024
//	deposit_lock_script_type_hash: 0x...
//	eth_account_lock_script_type_hash: 0x...
//	rollup_type_hash: 0x...
//	rc_lock_script_type_hash: 0x...
//	rollup_type_script:
//	  code_hash: 0x...
//	  hash_type: type
//	  args: 0x...
func LoadFile(path string) (*Network, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}

	net := &Network{}
	if err := yaml.Unmarshal(raw, net); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidNetwork, path, err)
	}
	setDevnetDefaults(net)

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// FromEnv reads devnet parameters from environment variables, e.g. with
// prefix GW: GW_RPC_URL, GW_ROLLUP_TYPE_HASH, GW_ROLLUP_TYPE_SCRIPT_ARGS.
func FromEnv(prefix string) (*Network, error) {
	net := &Network{}
	if err := envconfig.Process(prefix, net); err != nil {
		return nil, fmt.Errorf("%w: failed to process env var: %v", ErrInvalidNetwork, err)
	}
	// envconfig always allocates nested struct pointers
	if net.RollupTypeScript != nil && net.RollupTypeScript.CodeHash == (common.Hash{}) {
		net.RollupTypeScript = nil
	}
	setDevnetDefaults(net)

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

func setDevnetDefaults(net *Network) {
	if net.Name == "" {
		net.Name = devnetName
	}
	if net.AddressPrefix == "" {
		net.AddressPrefix = Testnet.AddressPrefix
	}
	if net.ShortLocks == nil {
		net.ShortLocks = append([]common.Hash{}, Testnet.ShortLocks...)
	}
}
