package gwclient_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-godwoken/gwclient"
	"github.com/vulpemventures/go-godwoken/network"
	"github.com/vulpemventures/go-godwoken/translator"
)

var knownHash = common.HexToHash("0x19f5ff51a85eed3b40f2cda333e10d716c9054204e0ef0a49dfd6ac2c37e07a6")

type gwTestService struct {
	accounts map[common.Hash]hexutil.Uint64
	lastHash common.Hash
}

// Get_account_id_by_script_hash is served as gw_get_account_id_by_script_hash.
func (s *gwTestService) Get_account_id_by_script_hash(hash common.Hash) *hexutil.Uint64 {
	s.lastHash = hash
	id, ok := s.accounts[hash]
	if !ok {
		return nil
	}
	return &id
}

func newTestClient(t *testing.T, accounts map[common.Hash]hexutil.Uint64) (*gwclient.Client, *gwTestService) {
	t.Helper()

	server := rpc.NewServer()
	service := &gwTestService{accounts: accounts}
	require.NoError(t, server.RegisterName("gw", service))

	raw := rpc.DialInProc(server)
	client := gwclient.NewClient(raw)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return client, service
}

func TestAccountIDByScriptHash(t *testing.T) {
	client, svc := newTestClient(t, map[common.Hash]hexutil.Uint64{knownHash: 17})

	id, found, err := client.AccountIDByScriptHash(context.Background(), knownHash)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint32(17), id)
	require.Equal(t, knownHash, svc.lastHash)

	_, found, err = client.AccountIDByScriptHash(context.Background(), common.HexToHash("0x01"))
	require.NoError(t, err)
	require.False(t, found)
}

func TestAccountIDOverflow(t *testing.T) {
	client, _ := newTestClient(t, map[common.Hash]hexutil.Uint64{knownHash: 1 << 32})

	_, _, err := client.AccountIDByScriptHash(context.Background(), knownHash)
	require.Error(t, err)
}

func TestUnknownMethod(t *testing.T) {
	server := rpc.NewServer()
	raw := rpc.DialInProc(server)
	client := gwclient.NewClient(raw)
	defer client.Close()
	defer server.Stop()

	_, _, err := client.AccountIDByScriptHash(context.Background(), knownHash)
	require.Error(t, err)
	rpcErr, ok := err.(rpc.Error)
	require.True(t, ok, "error type = %T, want rpc.Error", err)
	require.Equal(t, -32601, rpcErr.ErrorCode())
}

func TestTranslatorAccountExists(t *testing.T) {
	client, svc := newTestClient(t, map[common.Hash]hexutil.Uint64{knownHash: 3})

	tr, err := translator.NewWithNetwork(&network.Testnet, translator.WithResolver(client))
	require.NoError(t, err)

	found, err := tr.AccountExists(context.Background(), "0x018332E7b64E01246BfC981C75f8f5A5B18115F0")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, knownHash, svc.lastHash)

	found, err = tr.AccountExists(context.Background(), "0xD173313A51f8fc37BcF67569b463abd89d81844f")
	require.NoError(t, err)
	require.False(t, found)
}
