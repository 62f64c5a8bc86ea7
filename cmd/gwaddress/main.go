// Command gwaddress derives CKB and Godwoken addresses for Ethereum
// accounts.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/vulpemventures/go-godwoken/gwclient"
	"github.com/vulpemventures/go-godwoken/network"
	"github.com/vulpemventures/go-godwoken/translator"
)

// Commonly used command line flags.
var (
	networkFlag = &cli.StringFlag{
		Name:    "network",
		Usage:   "testnet, mainnet or the name of a devnet",
		Value:   network.Testnet.Name,
		EnvVars: []string{"GWADDRESS_NETWORK"},
	}
	devnetConfigFlag = &cli.PathFlag{
		Name:  "devnet-config",
		Usage: "YAML file with the devnet parameters",
	}
	devnetEnvFlag = &cli.StringFlag{
		Name:  "devnet-env",
		Usage: "prefix of the environment variables holding the devnet parameters",
	}
	rpcFlag = &cli.StringFlag{
		Name:  "rpc",
		Usage: "Godwoken RPC endpoint, overrides the network default",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "one of panic, fatal, error, warn, info, debug, trace",
		Value: logrus.InfoLevel.String(),
	}
)

var logger = logrus.New()

func newApp() *cli.App {
	return &cli.App{
		Name:  "gwaddress",
		Usage: "derive CKB and Godwoken addresses for Ethereum accounts",
		Flags: []cli.Flag{
			networkFlag,
			devnetConfigFlag,
			devnetEnvFlag,
			rpcFlag,
			logLevelFlag,
		},
		Before: func(c *cli.Context) error {
			lvl, err := logrus.ParseLevel(c.String(logLevelFlag.Name))
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			logger.SetOutput(c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			commandLayer1,
			commandLayer1LockHash,
			commandEthFromLayer1,
			commandLayer2LockHash,
			commandShort,
			commandDeposit,
			commandParseDeposit,
			commandEthFromKey,
			commandExists,
			commandWait,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadNetwork(c *cli.Context) (*network.Network, error) {
	var (
		devnet *network.Network
		err    error
	)
	switch {
	case c.IsSet(devnetConfigFlag.Name):
		devnet, err = network.LoadFile(c.Path(devnetConfigFlag.Name))
	case c.IsSet(devnetEnvFlag.Name):
		devnet, err = network.FromEnv(c.String(devnetEnvFlag.Name))
	}
	if err != nil {
		return nil, err
	}

	name := c.String(networkFlag.Name)
	if devnet != nil && !c.IsSet(networkFlag.Name) {
		name = devnet.Name
	}
	net, err := network.Select(name, devnet)
	if err != nil {
		return nil, err
	}
	if c.IsSet(rpcFlag.Name) {
		net.RPCURL = c.String(rpcFlag.Name)
	}
	return net, nil
}

// newTranslator returns a translator for the selected network. With dial
// set it is also connected to the Godwoken RPC, the returned func closes the
// connection.
func newTranslator(c *cli.Context, dial bool) (*translator.Translator, func(), error) {
	net, err := loadNetwork(c)
	if err != nil {
		return nil, nil, err
	}

	opts := []translator.Option{translator.WithLogger(logger)}
	closeFn := func() {}
	if dial {
		if net.RPCURL == "" {
			return nil, nil, fmt.Errorf("network %s has no rpc url, use --%s", net.Name, rpcFlag.Name)
		}
		client, err := gwclient.DialContext(c.Context, net.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s: %w", net.RPCURL, err)
		}
		opts = append(opts, translator.WithResolver(client))
		closeFn = client.Close
	}

	tr, err := translator.NewWithNetwork(net, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"network": net.Name,
		"rpc":     net.RPCURL,
	}).Debug("translator ready")
	return tr, closeFn, nil
}
