package network

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/vulpemventures/go-godwoken/script"
)

// ScriptTemplate is the code hash and hash type of a deployed script,
// completed with args to obtain a script.
type ScriptTemplate struct {
	CodeHash common.Hash
	HashType script.HashType
}

// Script returns the script for the template and the given args.
func (t ScriptTemplate) Script(args []byte) *script.Script {
	return script.New(t.CodeHash, t.HashType, args)
}

// Deployment contains the on chain scripts used by derivations.
type Deployment struct {
	DepositLock    ScriptTemplate
	EthAccountLock ScriptTemplate
	OmniLock       ScriptTemplate
}

// Deployment derives the deployment from the network type hashes. The
// Godwoken scripts are referenced by type so that upgrades keep addresses
// stable.
func (n *Network) Deployment() Deployment {
	return Deployment{
		DepositLock: ScriptTemplate{
			CodeHash: n.DepositLockScriptTypeHash,
			HashType: script.HashTypeType,
		},
		EthAccountLock: ScriptTemplate{
			CodeHash: n.EthAccountLockScriptTypeHash,
			HashType: script.HashTypeType,
		},
		OmniLock: ScriptTemplate{
			CodeHash: n.RCLockScriptTypeHash,
			HashType: script.HashTypeType,
		},
	}
}
