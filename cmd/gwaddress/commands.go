package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"github.com/vulpemventures/go-godwoken/translator"
)

var (
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "layer 1 address allowed to cancel the deposit, defaults to the omni lock of the eth address",
	}
	intervalFlag = &cli.DurationFlag{
		Name:  "interval",
		Usage: "polling interval",
		Value: translator.DefaultPollInterval,
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "give up after this long, a negative value waits forever",
		Value: translator.NoTimeout,
	}
)

const privateKeyLength = 32

var errMissingArg = errors.New("missing argument")

func firstArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%w: usage: %s %s", errMissingArg, c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args().First(), nil
}

// offline runs fn against a translator that never dials the RPC and prints
// its result.
func offline(fn func(*translator.Translator, string) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		arg, err := firstArg(c)
		if err != nil {
			return err
		}
		tr, closeFn, err := newTranslator(c, false)
		if err != nil {
			return err
		}
		defer closeFn()

		out, err := fn(tr, arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, out)
		return nil
	}
}

var commandLayer1 = &cli.Command{
	Name:      "layer1",
	Usage:     "print the layer 1 omni lock address of an eth address",
	ArgsUsage: "<eth address>",
	Action: offline(func(tr *translator.Translator, eth string) (any, error) {
		return tr.EthAddressToLayer1Address(eth)
	}),
}

var commandLayer1LockHash = &cli.Command{
	Name:      "lock-hash",
	Usage:     "print the lock hash of a layer 1 address",
	ArgsUsage: "<ckb address>",
	Action: offline(func(tr *translator.Translator, addr string) (any, error) {
		return tr.LockHashFromAddress(addr)
	}),
}

var commandEthFromLayer1 = &cli.Command{
	Name:      "eth",
	Usage:     "print the eth address owning a layer 1 omni lock address",
	ArgsUsage: "<ckb address>",
	Action: offline(func(tr *translator.Translator, addr string) (any, error) {
		eth, err := tr.EthAddressFromLayer1Address(addr)
		if err != nil {
			return nil, err
		}
		return eth.Hex(), nil
	}),
}

var commandLayer2LockHash = &cli.Command{
	Name:      "layer2-lock-hash",
	Usage:     "print the layer 2 account lock hash of an eth address",
	ArgsUsage: "<eth address>",
	Action: offline(func(tr *translator.Translator, eth string) (any, error) {
		return tr.Layer2EthLockHash(eth)
	}),
}

var commandShort = &cli.Command{
	Name:      "short",
	Usage:     "print the layer 2 short address of an eth address",
	ArgsUsage: "<eth address>",
	Action: offline(func(tr *translator.Translator, eth string) (any, error) {
		return tr.EthAddressToLayer2ShortAddress(eth)
	}),
}

var commandDeposit = &cli.Command{
	Name:      "deposit",
	Usage:     "print the layer 1 address crediting the layer 2 account of an eth address",
	ArgsUsage: "<eth address>",
	Flags:     []cli.Flag{ownerFlag},
	Action: func(c *cli.Context) error {
		owner := c.String(ownerFlag.Name)
		return offline(func(tr *translator.Translator, eth string) (any, error) {
			if owner == "" {
				return tr.EthAddressToLayer2DepositAddress(eth)
			}
			return tr.Layer2DepositAddressForOwner(owner, eth)
		})(c)
	},
}

var commandParseDeposit = &cli.Command{
	Name:      "parse-deposit",
	Usage:     "print the lock args of a deposit address",
	ArgsUsage: "<ckb address>",
	Action: offline(func(tr *translator.Translator, addr string) (any, error) {
		args, err := tr.ParseDepositAddress(addr)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf(
			"owner_lock_hash: %s\nlayer2_lock_hash: %s\nlayer2_lock_args: %s\ncancel_timeout: %s\nregistry_id: %d",
			args.OwnerLockHash.Hex(),
			args.Layer2Lock.Hash().Hex(),
			args.Layer2Lock.Args,
			args.CancelTimeout,
			args.RegistryID,
		), nil
	}),
}

var commandEthFromKey = &cli.Command{
	Name:      "eth-from-key",
	Usage:     "print the eth address of a hex encoded secp256k1 private key",
	ArgsUsage: "<private key>",
	Action: func(c *cli.Context) error {
		arg, err := firstArg(c)
		if err != nil {
			return err
		}
		raw, err := hexutil.Decode(arg)
		if err != nil || len(raw) != privateKeyLength {
			return fmt.Errorf("invalid private key, expected 0x followed by %d hex digits", 2*privateKeyLength)
		}
		priv, _ := btcec.PrivKeyFromBytes(raw)
		fmt.Fprintln(c.App.Writer, translator.EthAddressFromPrivateKey(priv).Hex())
		return nil
	},
}

var commandExists = &cli.Command{
	Name:      "exists",
	Usage:     "tell whether the layer 2 account of an eth address was created",
	ArgsUsage: "<eth address>",
	Action: func(c *cli.Context) error {
		eth, err := firstArg(c)
		if err != nil {
			return err
		}
		tr, closeFn, err := newTranslator(c, true)
		if err != nil {
			return err
		}
		defer closeFn()

		found, err := tr.AccountExists(c.Context, eth)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, found)
		return nil
	},
}

var commandWait = &cli.Command{
	Name:      "wait",
	Usage:     "poll until the layer 2 account of an eth address is created",
	ArgsUsage: "<eth address>",
	Flags:     []cli.Flag{intervalFlag, timeoutFlag},
	Action: func(c *cli.Context) error {
		eth, err := firstArg(c)
		if err != nil {
			return err
		}
		tr, closeFn, err := newTranslator(c, true)
		if err != nil {
			return err
		}
		defer closeFn()

		timeout := c.Duration(timeoutFlag.Name)
		if timeout < 0 {
			timeout = translator.NoTimeout
		}
		start := time.Now()
		if err := tr.WaitForAccountCreation(c.Context, eth, c.Duration(intervalFlag.Name), timeout); err != nil {
			return err
		}
		logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("layer 2 account created")
		return nil
	},
}

