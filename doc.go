// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2019-2020 The VulpemVentures developers

/*
Package godwoken derives the CKB and Godwoken addresses that let an
Ethereum account hold assets on both layers.

First, load the network parameters and initialize a translator. Presets
exist for testnet and mainnet, devnets are read from YAML or environment.

	tr, err := translator.NewWithNetwork(&network.Testnet)
	if err != nil {
		log.Fatal(err)
	}

The layer 1 address is an omni lock that the Ethereum key signs for. CKB
sent to it can be spent with MetaMask.

	l1, err := tr.EthAddressToLayer1Address("0x018332E7b64E01246BfC981C75f8f5A5B18115F0")
	if err != nil {
		log.Fatal(err)
	}

To credit the layer 2 account, funds are sent to the deposit address.
The deposit lock embeds the layer 2 account lock and the hash of the
layer 1 lock allowed to reclaim the funds once the cancel timeout expires.
By default that is the omni lock of the same Ethereum address.

	deposit, err := tr.EthAddressToLayer2DepositAddress("0x018332E7b64E01246BfC981C75f8f5A5B18115F0")
	if err != nil {
		log.Fatal(err)
	}

	// reclaimable by another layer 1 address
	deposit, err = tr.Layer2DepositAddressForOwner(
		"ckt1qyqrdsefa43s6m882pcj53m4gdnj4k440axqswmu83",
		"0x018332E7b64E01246BfC981C75f8f5A5B18115F0",
	)

Godwoken creates the layer 2 account when the deposit is collected by the
rollup. Connect a resolver to find out when that happens.

	client, err := gwclient.Dial(network.Testnet.RPCURL)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	tr, _ = translator.NewWithNetwork(&network.Testnet, translator.WithResolver(client))
	err = tr.WaitForAccountCreation(
		ctx,
		"0x018332E7b64E01246BfC981C75f8f5A5B18115F0",
		translator.DefaultPollInterval,
		10*time.Minute,
	)

The same derivations are available from the command line:

	$ go run ./cmd/gwaddress --network testnet deposit 0x018332E7b64E01246BfC981C75f8f5A5B18115F0
*/
package godwoken
