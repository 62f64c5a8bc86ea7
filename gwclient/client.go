// Package gwclient provides a client for the Godwoken RPC API.
package gwclient

import (
	"context"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client defines typed wrappers for the Godwoken RPC API.
type Client struct {
	c *rpc.Client
}

// Dial connects a client to the given URL.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects a client to the given URL with context.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client) *Client {
	return &Client{c}
}

// Close closes the underlying RPC connection.
func (gc *Client) Close() {
	gc.c.Close()
}

// AccountIDByScriptHash returns the id of the account whose lock hashes to
// scriptHash. found is false when the node knows no such account.
func (gc *Client) AccountIDByScriptHash(ctx context.Context, scriptHash common.Hash) (uint32, bool, error) {
	var result *hexutil.Uint64
	err := gc.c.CallContext(ctx, &result, "gw_get_account_id_by_script_hash", scriptHash)
	if err != nil {
		return 0, false, err
	}
	if result == nil {
		return 0, false, nil
	}
	if uint64(*result) > math.MaxUint32 {
		return 0, false, fmt.Errorf("account id %d overflows uint32", uint64(*result))
	}
	return uint32(*result), true, nil
}
