package network

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vulpemventures/go-godwoken/script"
)

// ErrInvalidNetwork is returned when a set of network parameters is
// incomplete or inconsistent.
var ErrInvalidNetwork = errors.New("invalid network parameters")

// AddressEncoding selects which payload format addresses are encoded with.
type AddressEncoding byte

const (
	// EncodingLegacy emits the short format for known locks and the
	// deprecated full-type/full-data formats otherwise. It is what the
	// deployed Godwoken tooling produces.
	EncodingLegacy AddressEncoding = iota
	// EncodingFull always emits the full format (bech32m).
	EncodingFull
)

func (e AddressEncoding) String() string {
	switch e {
	case EncodingLegacy:
		return "legacy"
	case EncodingFull:
		return "full"
	default:
		return fmt.Sprintf("AddressEncoding(%d)", byte(e))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *AddressEncoding) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "legacy":
		*e = EncodingLegacy
	case "full":
		*e = EncodingFull
	default:
		return fmt.Errorf("unknown address encoding %q", text)
	}
	return nil
}

// Short format code hash indexes.
const (
	ShortSecp256k1Blake160 = 0x00
	ShortMultisig          = 0x01
	ShortAnyoneCanPay      = 0x02
)

// Network type represents the parameters of a CKB chain and of the
// Godwoken rollup deployed on it.
type Network struct {
	Name string `yaml:"name" envconfig:"NAME"`
	// Human-readable part of addresses: ckb for mainnet, ckt otherwise.
	AddressPrefix   string          `yaml:"address_prefix" envconfig:"ADDRESS_PREFIX"`
	AddressEncoding AddressEncoding `yaml:"address_encoding" envconfig:"ADDRESS_ENCODING"`

	// Endpoints, passed through to RPC clients.
	CKBURL     string `yaml:"ckb_url" envconfig:"CKB_URL"`
	RPCURL     string `yaml:"rpc_url" envconfig:"RPC_URL"`
	IndexerURL string `yaml:"indexer_url" envconfig:"INDEXER_URL"`

	DepositLockScriptTypeHash    common.Hash `yaml:"deposit_lock_script_type_hash" envconfig:"DEPOSIT_LOCK_SCRIPT_TYPE_HASH"`
	EthAccountLockScriptTypeHash common.Hash `yaml:"eth_account_lock_script_type_hash" envconfig:"ETH_ACCOUNT_LOCK_SCRIPT_TYPE_HASH"`
	// RollupTypeScript is optional; when set it must hash to RollupTypeHash.
	RollupTypeScript *script.Script `yaml:"rollup_type_script" envconfig:"ROLLUP_TYPE_SCRIPT"`
	RollupTypeHash   common.Hash    `yaml:"rollup_type_hash" envconfig:"ROLLUP_TYPE_HASH"`
	// Type hash of the omni lock (formerly RC lock).
	RCLockScriptTypeHash common.Hash `yaml:"rc_lock_script_type_hash" envconfig:"RC_LOCK_SCRIPT_TYPE_HASH"`

	// Type hashes of the locks addressable with the short format, indexed
	// by code hash index.
	ShortLocks []common.Hash `yaml:"short_locks" ignored:"true"`
}

// Testnet defines the parameters of the Godwoken v1 testnet on CKB Pudge.
var Testnet = Network{
	Name:            "testnet",
	AddressPrefix:   "ckt",
	AddressEncoding: EncodingLegacy,
	CKBURL:          "https://testnet.ckb.dev",
	RPCURL:          "https://godwoken-testnet-v1.ckbapp.dev",
	IndexerURL:      "https://testnet.ckb.dev/indexer",
	DepositLockScriptTypeHash: common.HexToHash(
		"0x50704b84ecb4c4b12b43c7acb260ddd69171c21b4c0ba15f3c469b7d143f6f18",
	),
	EthAccountLockScriptTypeHash: common.HexToHash(
		"0x07521d0aa8e66ef441ebc31204d86bb23fc83e9edc58c19dbb1b0ebe64336ec0",
	),
	RollupTypeScript: script.New(
		common.HexToHash("0x1e44736436b406f8e48a30dfbddcf044feb0c9eebfe63b0f81cb5bb727d84854"),
		script.HashTypeType,
		common.FromHex("0x86c7429247beba7ddd6e4361bcdfc0510b0b644131e2afb7e486375249a01802"),
	),
	RollupTypeHash: common.HexToHash(
		"0x702359ea7f073558921eb50d8c1c77e92f760c8f8656bde4995f26b8963e2dd8",
	),
	RCLockScriptTypeHash: common.HexToHash(
		"0x79f90bb5e892d80dd213439eeab551120eb417678824f282b4ffb5f21bad2e1e",
	),
	ShortLocks: []common.Hash{
		ShortSecp256k1Blake160: common.HexToHash("0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8"),
		ShortMultisig:          common.HexToHash("0x5c5069eb0857efc65e1bca0c07df34c31663b3622fd3876c876320fc9634e2a8"),
		ShortAnyoneCanPay:      common.HexToHash("0x3419a1c09eb2567f6552ee7a8ecffd64155cffe0f1796e6e61ec088d740c1356"),
	},
}

// Mainnet defines the parameters of the Godwoken v1 mainnet on CKB Lina.
var Mainnet = Network{
	Name:            "mainnet",
	AddressPrefix:   "ckb",
	AddressEncoding: EncodingLegacy,
	CKBURL:          "https://mainnet.ckb.dev",
	RPCURL:          "https://v1.mainnet.godwoken.io/rpc",
	IndexerURL:      "https://mainnet.ckb.dev/indexer",
	DepositLockScriptTypeHash: common.HexToHash(
		"0xff602581f07667eef54232cce850cbca2c418b3418611c132fca849d1edcd775",
	),
	EthAccountLockScriptTypeHash: common.HexToHash(
		"0x096df264f38fbf4ec5d1d5b9b5fd62bb9bd7e4fb10e8b6fa23f1a5e9c4e98d0b",
	),
	RollupTypeHash: common.HexToHash(
		"0x1ca35cb5fda4bd542e71d94a6d5f4c0d255d6d6fba73c41cf45d2693e59b3072",
	),
	RCLockScriptTypeHash: common.HexToHash(
		"0x9b819793a64463aed77c615d6cb226eea5487ccfc0783043a587254cda2b6f26",
	),
	ShortLocks: []common.Hash{
		ShortSecp256k1Blake160: common.HexToHash("0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8"),
		ShortMultisig:          common.HexToHash("0x5c5069eb0857efc65e1bca0c07df34c31663b3622fd3876c876320fc9634e2a8"),
		ShortAnyoneCanPay:      common.HexToHash("0xd369597ff47f29fbc0d47d2e3775370d1250b85140c670e4718af712983a2354"),
	},
}

// ByName returns a copy of the preset parameters for testnet or mainnet.
func ByName(name string) (*Network, error) {
	var net Network
	switch name {
	case Testnet.Name:
		net = Testnet
	case Mainnet.Name:
		net = Mainnet
	default:
		return nil, fmt.Errorf("%w: no preset for network %q", ErrInvalidNetwork, name)
	}
	return net.Copy(), nil
}

// Copy returns a deep copy of the network parameters.
func (n *Network) Copy() *Network {
	cpy := *n
	if n.RollupTypeScript != nil {
		cpy.RollupTypeScript = script.New(
			n.RollupTypeScript.CodeHash,
			n.RollupTypeScript.HashType,
			n.RollupTypeScript.Args,
		)
	}
	if n.ShortLocks != nil {
		cpy.ShortLocks = append([]common.Hash{}, n.ShortLocks...)
	}
	return &cpy
}

// Select returns the preset for testnet and mainnet, and the given devnet
// parameters for any other name. Devnet parameters are validated.
func Select(name string, devnet *Network) (*Network, error) {
	if name == Testnet.Name || name == Mainnet.Name {
		return ByName(name)
	}
	if devnet == nil {
		return nil, fmt.Errorf("%w: network %q requires explicit parameters",
			ErrInvalidNetwork, name)
	}
	if err := devnet.Validate(); err != nil {
		return nil, err
	}
	return devnet, nil
}

// Validate checks that every parameter needed for derivations is set and
// that the rollup type script, if any, matches the rollup type hash.
func (n *Network) Validate() error {
	if n.AddressPrefix == "" {
		return fmt.Errorf("%w: address_prefix is required", ErrInvalidNetwork)
	}
	hashes := []struct {
		name string
		hash common.Hash
	}{
		{"deposit_lock_script_type_hash", n.DepositLockScriptTypeHash},
		{"eth_account_lock_script_type_hash", n.EthAccountLockScriptTypeHash},
		{"rollup_type_hash", n.RollupTypeHash},
		{"rc_lock_script_type_hash", n.RCLockScriptTypeHash},
	}
	for _, h := range hashes {
		if h.hash == (common.Hash{}) {
			return fmt.Errorf("%w: %s is required", ErrInvalidNetwork, h.name)
		}
	}
	if n.RollupTypeScript != nil {
		if got := n.RollupTypeScript.Hash(); got != n.RollupTypeHash {
			return fmt.Errorf("%w: rollup_type_script hashes to %s, rollup_type_hash is %s",
				ErrInvalidNetwork, got.Hex(), n.RollupTypeHash.Hex())
		}
	}
	if n.AddressEncoding > EncodingFull {
		return fmt.Errorf("%w: unknown address encoding %d", ErrInvalidNetwork, n.AddressEncoding)
	}
	return nil
}
