package script

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vulpemventures/go-godwoken/ckbhash"
	"github.com/vulpemventures/go-godwoken/internal/molecule"
)

// ErrMalformedRecord is returned when a byte string can not be decoded
// into the expected molecule record.
var ErrMalformedRecord = molecule.ErrMalformed

// HashType tells how the code hash of a script is matched against cells at
// verification time.
type HashType byte

const (
	// HashTypeData matches the data hash of a cell, VM version 0.
	HashTypeData HashType = 0
	// HashTypeType matches the type script hash of a cell.
	HashTypeType HashType = 1
	// HashTypeData1 matches the data hash of a cell, VM version 1.
	HashTypeData1 HashType = 2
)

// ParseHashType validates the serialized form of a hash type.
func ParseHashType(b byte) (HashType, error) {
	t := HashType(b)
	if !t.Valid() {
		return 0, fmt.Errorf("unknown hash type %#x", b)
	}
	return t, nil
}

// Valid returns whether t is one of the known hash types.
func (t HashType) Valid() bool {
	return t == HashTypeData || t == HashTypeType || t == HashTypeData1
}

func (t HashType) String() string {
	switch t {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	default:
		return fmt.Sprintf("HashType(%d)", byte(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t HashType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown hash type %#x", byte(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *HashType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "data":
		*t = HashTypeData
	case "type":
		*t = HashTypeType
	case "data1":
		*t = HashTypeData1
	default:
		return fmt.Errorf("unknown hash type %q", text)
	}
	return nil
}

// Script is a CKB script: a code hash identifying a program, the way that
// hash is resolved and the arguments passed to the program.
type Script struct {
	CodeHash common.Hash   `json:"code_hash" yaml:"code_hash" envconfig:"CODE_HASH"`
	HashType HashType      `json:"hash_type" yaml:"hash_type" envconfig:"HASH_TYPE"`
	Args     hexutil.Bytes `json:"args" yaml:"args" envconfig:"ARGS"`
}

// New returns a script with a private copy of args.
func New(codeHash common.Hash, hashType HashType, args []byte) *Script {
	return &Script{
		CodeHash: codeHash,
		HashType: hashType,
		Args:     append([]byte{}, args...),
	}
}

// Serialize returns the molecule encoding of the script:
//
//	table Script { code_hash: Byte32, hash_type: byte, args: Bytes }
func (s *Script) Serialize() []byte {
	return molecule.Table(
		s.CodeHash.Bytes(),
		[]byte{byte(s.HashType)},
		molecule.FixVec(s.Args),
	)
}

// Hash returns the script hash, used on chain as the identity of a lock.
func (s *Script) Hash() common.Hash {
	return ckbhash.Blake256(s.Serialize())
}

// Equal reports whether the two scripts are the same.
func (s *Script) Equal(other *Script) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.CodeHash == other.CodeHash &&
		s.HashType == other.HashType &&
		bytes.Equal(s.Args, other.Args)
}

// Deserialize parses the molecule encoding of a script.
func Deserialize(data []byte) (*Script, error) {
	fields, err := molecule.ReadTable(data, 3)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if len(fields[0]) != common.HashLength {
		return nil, fmt.Errorf("%w: script code hash is %d bytes",
			ErrMalformedRecord, len(fields[0]))
	}
	if len(fields[1]) != 1 {
		return nil, fmt.Errorf("%w: script hash type is %d bytes",
			ErrMalformedRecord, len(fields[1]))
	}
	hashType, err := ParseHashType(fields[1][0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	args, err := molecule.ReadFixVec(fields[2])
	if err != nil {
		return nil, fmt.Errorf("script args: %w", err)
	}

	return &Script{
		CodeHash: common.BytesToHash(fields[0]),
		HashType: hashType,
		Args:     args,
	}, nil
}
