package script_test

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-godwoken/script"
)

const (
	omniLockCodeHash = "0x79f90bb5e892d80dd213439eeab551120eb417678824f282b4ffb5f21bad2e1e"
	omniLockArgs     = "0x01018332e7b64e01246bfc981c75f8f5a5b18115f000"
)

func TestSerialize(t *testing.T) {
	s := script.New(
		common.HexToHash(omniLockCodeHash),
		script.HashTypeType,
		hexutil.MustDecode(omniLockArgs),
	)

	require.Equal(
		t,
		"4b000000100000003000000031000000"+
			"79f90bb5e892d80dd213439eeab551120eb417678824f282b4ffb5f21bad2e1e"+
			"01"+
			"16000000"+"01018332e7b64e01246bfc981c75f8f5a5b18115f000",
		hex.EncodeToString(s.Serialize()),
	)
	require.Equal(
		t,
		"0x3a4584466f046ec2f41dc757312f54cc6c5283998b80a216cc76c61b702d9bc9",
		s.Hash().Hex(),
	)

	decoded, err := script.Deserialize(s.Serialize())
	require.NoError(t, err)
	require.True(t, s.Equal(decoded))
}

func TestRollupTypeScriptHash(t *testing.T) {
	s := script.New(
		common.HexToHash("0x1e44736436b406f8e48a30dfbddcf044feb0c9eebfe63b0f81cb5bb727d84854"),
		script.HashTypeType,
		hexutil.MustDecode("0x86c7429247beba7ddd6e4361bcdfc0510b0b644131e2afb7e486375249a01802"),
	)
	require.Equal(
		t,
		"0x702359ea7f073558921eb50d8c1c77e92f760c8f8656bde4995f26b8963e2dd8",
		s.Hash().Hex(),
	)
}

func TestHashTypeChangesHash(t *testing.T) {
	codeHash := common.HexToHash(omniLockCodeHash)
	args := hexutil.MustDecode(omniLockArgs)

	data := script.New(codeHash, script.HashTypeData, args).Hash()
	typ := script.New(codeHash, script.HashTypeType, args).Hash()
	data1 := script.New(codeHash, script.HashTypeData1, args).Hash()

	assert.NotEqual(t, data, typ)
	assert.NotEqual(t, data, data1)
	assert.NotEqual(t, typ, data1)
}

func TestDeserializeMalformed(t *testing.T) {
	valid := script.New(
		common.HexToHash(omniLockCodeHash),
		script.HashTypeData1,
		hexutil.MustDecode(omniLockArgs),
	).Serialize()

	badHashType := append([]byte{}, valid...)
	badHashType[48] = 0x07

	badArgsLen := append([]byte{}, valid...)
	badArgsLen[49] = 0x15

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"truncated", valid[:40]},
		{"unknown hash type", badHashType},
		{"args length mismatch", badArgsLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Deserialize(tt.data)
			require.ErrorIs(t, err, script.ErrMalformedRecord)
		})
	}
}

func TestHashTypeText(t *testing.T) {
	for _, ht := range []script.HashType{script.HashTypeData, script.HashTypeType, script.HashTypeData1} {
		text, err := ht.MarshalText()
		require.NoError(t, err)

		var parsed script.HashType
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, ht, parsed)
	}

	var ht script.HashType
	require.Error(t, ht.UnmarshalText([]byte("data2")))

	_, err := script.ParseHashType(3)
	require.Error(t, err)
}
