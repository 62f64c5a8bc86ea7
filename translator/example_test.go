package translator_test

import (
	"fmt"

	"github.com/vulpemventures/go-godwoken/network"
	"github.com/vulpemventures/go-godwoken/translator"
)

func ExampleTranslator_EthAddressToLayer1Address() {
	tr, err := translator.NewWithNetwork(&network.Testnet)
	if err != nil {
		panic(err)
	}

	addr, err := tr.EthAddressToLayer1Address("0x018332E7b64E01246BfC981C75f8f5A5B18115F0")
	if err != nil {
		panic(err)
	}
	fmt.Println(addr)
	// Output: ckt1q3uljza4azfdsrwjzdpea6442yfqadqhv7yzfu5zknlmtusm45hpuqgpsvew0djwqyjxhlycr36l3ad9kxq3tuqqlmmcjj
}

func ExampleTranslator_EthAddressToLayer2ShortAddress() {
	tr, err := translator.NewWithNetwork(&network.Testnet)
	if err != nil {
		panic(err)
	}

	short, err := tr.EthAddressToLayer2ShortAddress("0x018332E7b64E01246BfC981C75f8f5A5B18115F0")
	if err != nil {
		panic(err)
	}
	fmt.Println(short)
	// Output: 0x19f5ff51a85eed3b40f2cda333e10d716c905420
}

func ExampleTranslator_ParseDepositAddress() {
	tr, err := translator.NewWithNetwork(&network.Testnet)
	if err != nil {
		panic(err)
	}

	addr, err := tr.EthAddressToLayer2DepositAddress("0xD173313A51f8fc37BcF67569b463abd89d81844f")
	if err != nil {
		panic(err)
	}
	args, err := tr.ParseDepositAddress(addr)
	if err != nil {
		panic(err)
	}
	fmt.Println(args.OwnerLockHash.Hex())
	fmt.Println(args.CancelTimeout, args.RegistryID)
	// Output:
	// 0xb91e2ae6ecee168d4cb625fc19708d8fecec6d325c49b485d97bd68bce90a9e2
	// 0xc000000000093a81 2
}
