package deposit_test

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-godwoken/deposit"
	"github.com/vulpemventures/go-godwoken/script"
)

const (
	ownerLockHash        = "0xb91e2ae6ecee168d4cb625fc19708d8fecec6d325c49b485d97bd68bce90a9e2"
	ethAccountLockHash   = "0x07521d0aa8e66ef441ebc31204d86bb23fc83e9edc58c19dbb1b0ebe64336ec0"
	rollupTypeHash       = "702359ea7f073558921eb50d8c1c77e92f760c8f8656bde4995f26b8963e2dd8"
	ethAddress           = "d173313a51f8fc37bcf67569b463abd89d81844f"
	packedDepositLockArg = "a900000014000000340000009d000000a5000000" +
		"b91e2ae6ecee168d4cb625fc19708d8fecec6d325c49b485d97bd68bce90a9e2" +
		"6900000010000000300000003100000007521d0aa8e66ef441ebc31204d86bb2" +
		"3fc83e9edc58c19dbb1b0ebe64336ec00134000000" + rollupTypeHash + ethAddress +
		"813a0900000000c0" +
		"02000000"
)

func testLockArgs() *deposit.LockArgs {
	return &deposit.LockArgs{
		OwnerLockHash: common.HexToHash(ownerLockHash),
		Layer2Lock: *script.New(
			common.HexToHash(ethAccountLockHash),
			script.HashTypeType,
			hexutil.MustDecode("0x"+rollupTypeHash+ethAddress),
		),
		CancelTimeout: deposit.DefaultCancelTimeout,
		RegistryID:    deposit.RegistryIDEth,
	}
}

func TestPack(t *testing.T) {
	packed := testLockArgs().Pack()
	require.Equal(t, packedDepositLockArg, hex.EncodeToString(packed))
}

func TestUnpack(t *testing.T) {
	raw, err := hex.DecodeString(packedDepositLockArg)
	require.NoError(t, err)

	args, err := deposit.Unpack(raw)
	require.NoError(t, err)

	want := testLockArgs()
	require.Equal(t, want.OwnerLockHash, args.OwnerLockHash)
	require.True(t, want.Layer2Lock.Equal(&args.Layer2Lock))
	require.Equal(t, want.CancelTimeout, args.CancelTimeout)
	require.Equal(t, want.RegistryID, args.RegistryID)
}

// craftedOffsets is a 4 field table whose second offset points past its end.
var craftedOffsets = []byte{
	0x14, 0, 0, 0,
	0x14, 0, 0, 0,
	0xff, 0, 0, 0,
	0x14, 0, 0, 0,
	0x14, 0, 0, 0,
}

func TestUnpackMalformed(t *testing.T) {
	raw, err := hex.DecodeString(packedDepositLockArg)
	require.NoError(t, err)

	shortOwner := append([]byte{}, raw...)
	// shift the layer2 lock offset one byte earlier
	shortOwner[8] = 0x33

	wideRegistry := append(append([]byte{}, raw...), 0x00)
	wideRegistry[0] = 0xaa

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", raw[:len(raw)-1]},
		{"short owner lock hash", shortOwner},
		{"wide registry id", wideRegistry},
		{"bare script", testLockArgs().Layer2Lock.Serialize()},
		{"offset past end", craftedOffsets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := deposit.Unpack(tt.data)
			require.ErrorIs(t, err, deposit.ErrMalformedRecord)
		})
	}
}

func TestSince(t *testing.T) {
	since := deposit.DefaultCancelTimeout
	require.NoError(t, since.Validate())
	require.True(t, since.IsRelative())
	require.Equal(t, deposit.MetricTimestamp, since.Metric())
	require.Equal(t, uint64(604801), since.Value())
	require.Equal(t, "0xc000000000093a81", since.String())

	built, err := deposit.NewSince(true, deposit.MetricTimestamp, 604801)
	require.NoError(t, err)
	require.Equal(t, since, built)

	blocks, err := deposit.NewSince(false, deposit.MetricBlockNumber, 100)
	require.NoError(t, err)
	require.Equal(t, deposit.Since(100), blocks)
	require.False(t, blocks.IsRelative())

	_, err = deposit.NewSince(true, deposit.MetricEpoch, 1<<56)
	require.Error(t, err)

	_, err = deposit.NewSince(true, deposit.SinceMetric(3), 1)
	require.Error(t, err)

	require.Error(t, deposit.Since(0x0100000000000000).Validate())
	require.Error(t, deposit.Since(0x6000000000000000).Validate())
}

func TestSinceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (deposit.Since, error)
		want     deposit.Since
		relative bool
		metric   deposit.SinceMetric
	}{
		{"relative seconds", func() (deposit.Since, error) { return deposit.RelativeSeconds(604801) },
			deposit.DefaultCancelTimeout, true, deposit.MetricTimestamp},
		{"absolute timestamp", func() (deposit.Since, error) { return deposit.AbsoluteTimestamp(1600000000) },
			deposit.Since(0x4000000000000000 | 1600000000), false, deposit.MetricTimestamp},
		{"relative blocks", func() (deposit.Since, error) { return deposit.RelativeBlocks(10) },
			deposit.Since(0x800000000000000a), true, deposit.MetricBlockNumber},
		{"absolute block", func() (deposit.Since, error) { return deposit.AbsoluteBlock(10) },
			deposit.Since(10), false, deposit.MetricBlockNumber},
		{"relative epochs", func() (deposit.Since, error) { return deposit.RelativeEpochs(6, 0, 1) },
			deposit.Since(0xa000010000000006), true, deposit.MetricEpoch},
		{"absolute epoch", func() (deposit.Since, error) { return deposit.AbsoluteEpoch(1, 2, 4) },
			deposit.Since(0x2000040002000001), false, deposit.MetricEpoch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.relative, got.IsRelative())
			require.Equal(t, tt.metric, got.Metric())
			require.NoError(t, got.Validate())
		})
	}

	_, err := deposit.RelativeEpochs(1, 4, 4)
	require.Error(t, err)
	_, err = deposit.AbsoluteEpoch(1<<24, 0, 1)
	require.Error(t, err)
	_, err = deposit.RelativeBlocks(1 << 56)
	require.Error(t, err)
}
