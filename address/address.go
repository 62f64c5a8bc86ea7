package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	"github.com/vulpemventures/go-godwoken/network"
	"github.com/vulpemventures/go-godwoken/script"
)

// ErrInvalidAddress is returned for any address that can not be decoded
// into a script for the expected network.
var ErrInvalidAddress = errors.New("invalid address")

// Format is the first byte of an address payload.
type Format byte

const (
	// FormatFull carries code hash, hash type and args. Encoded with bech32m.
	FormatFull Format = 0x00
	// FormatShort carries a code hash index and a 20 byte args.
	FormatShort Format = 0x01
	// FormatFullData carries code hash and args, hash type data. Deprecated.
	FormatFullData Format = 0x02
	// FormatFullType carries code hash and args, hash type type. Deprecated.
	FormatFullType Format = 0x04
)

const (
	shortArgsSize    = 20
	maxShortACPArgs  = 22
	minFullPayload   = 1 + common.HashLength + 1
	minLegacyPayload = 1 + common.HashLength
)

// Payload is the decoded content of an address.
type Payload struct {
	Prefix string
	Format Format
	Script script.Script
}

// FromScript encodes the script into an address for the given network.
func FromScript(s *script.Script, net *network.Network) (string, error) {
	if s == nil {
		return "", errors.New("script must not be nil")
	}
	if net == nil {
		return "", errors.New("network must not be nil")
	}

	format := formatFor(s, net)
	var payload []byte
	switch format {
	case FormatShort:
		index, _ := shortIndex(s, net)
		payload = append([]byte{byte(FormatShort), index}, s.Args...)
	case FormatFullData, FormatFullType:
		payload = append([]byte{byte(format)}, s.CodeHash.Bytes()...)
		payload = append(payload, s.Args...)
	default:
		payload = append([]byte{byte(FormatFull)}, s.CodeHash.Bytes()...)
		payload = append(payload, byte(s.HashType))
		payload = append(payload, s.Args...)
	}

	return encode(net.AddressPrefix, format, payload)
}

// ToScript decodes an address, checking it belongs to the given network.
func ToScript(addr string, net *network.Network) (*script.Script, error) {
	p, err := Decode(addr, net)
	if err != nil {
		return nil, err
	}
	return &p.Script, nil
}

// Decode parses an address of any format, checking it belongs to the given
// network.
func Decode(addr string, net *network.Network) (*Payload, error) {
	if net == nil {
		return nil, errors.New("network must not be nil")
	}

	hrp, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if hrp != net.AddressPrefix {
		return nil, fmt.Errorf("%w: prefix %q does not match network %s (%q)",
			ErrInvalidAddress, hrp, net.Name, net.AddressPrefix)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidAddress)
	}

	format := Format(payload[0])
	if err := checkVariant(addr, hrp, data, format); err != nil {
		return nil, err
	}

	s, err := parsePayload(format, payload[1:], net)
	if err != nil {
		return nil, err
	}
	return &Payload{Prefix: hrp, Format: format, Script: *s}, nil
}

func parsePayload(format Format, body []byte, net *network.Network) (*script.Script, error) {
	switch format {
	case FormatFull:
		if len(body) < minFullPayload-1 {
			return nil, fmt.Errorf("%w: full payload is %d bytes", ErrInvalidAddress, len(body)+1)
		}
		hashType, err := script.ParseHashType(body[common.HashLength])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		return script.New(
			common.BytesToHash(body[:common.HashLength]),
			hashType,
			body[common.HashLength+1:],
		), nil

	case FormatFullData, FormatFullType:
		if len(body) < minLegacyPayload-1 {
			return nil, fmt.Errorf("%w: payload is %d bytes", ErrInvalidAddress, len(body)+1)
		}
		hashType := script.HashTypeData
		if format == FormatFullType {
			hashType = script.HashTypeType
		}
		return script.New(
			common.BytesToHash(body[:common.HashLength]),
			hashType,
			body[common.HashLength:],
		), nil

	case FormatShort:
		if len(body) < 1 {
			return nil, fmt.Errorf("%w: short payload has no code hash index", ErrInvalidAddress)
		}
		index, args := body[0], body[1:]
		if int(index) >= len(net.ShortLocks) {
			return nil, fmt.Errorf("%w: unknown code hash index %#x", ErrInvalidAddress, index)
		}
		maxArgs := shortArgsSize
		if index == network.ShortAnyoneCanPay {
			maxArgs = maxShortACPArgs
		}
		if len(args) < shortArgsSize || len(args) > maxArgs {
			return nil, fmt.Errorf("%w: short payload args are %d bytes", ErrInvalidAddress, len(args))
		}
		return script.New(net.ShortLocks[index], script.HashTypeType, args), nil

	default:
		return nil, fmt.Errorf("%w: unknown payload format %#x", ErrInvalidAddress, byte(format))
	}
}

func formatFor(s *script.Script, net *network.Network) Format {
	if net.AddressEncoding == network.EncodingFull {
		return FormatFull
	}
	if _, ok := shortIndex(s, net); ok {
		return FormatShort
	}
	switch s.HashType {
	case script.HashTypeType:
		return FormatFullType
	case script.HashTypeData:
		return FormatFullData
	default:
		return FormatFull
	}
}

func shortIndex(s *script.Script, net *network.Network) (byte, bool) {
	if s.HashType != script.HashTypeType || len(s.Args) != shortArgsSize {
		return 0, false
	}
	for i, codeHash := range net.ShortLocks {
		if codeHash == s.CodeHash {
			return byte(i), true
		}
	}
	return 0, false
}

// encode applies bech32m to the full format and bech32 to the others.
func encode(prefix string, format Format, payload []byte) (string, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	if format == FormatFull {
		return bech32.EncodeM(prefix, data)
	}
	return bech32.Encode(prefix, data)
}

// checkVariant rejects addresses whose checksum variant does not match the
// payload format. DecodeNoLimit accepts both variants without telling which
// one matched, so the address is re-encoded and compared.
func checkVariant(addr, hrp string, data []byte, format Format) error {
	var (
		expected string
		err      error
	)
	if format == FormatFull {
		expected, err = bech32.EncodeM(hrp, data)
	} else {
		expected, err = bech32.Encode(hrp, data)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if expected != strings.ToLower(addr) {
		return fmt.Errorf("%w: wrong checksum variant for format %#x", ErrInvalidAddress, byte(format))
	}
	return nil
}
