package address

import "github.com/ethereum/go-ethereum/common"

var (
	// DefaultLedgerAddress is the account used by the CLI when no --address is given.
	DefaultLedgerAddress = common.HexToAddress("0x0000000000000000000000000000617373657473")
	// ZeroAddress stands for "none" on either side of a mutation.
	ZeroAddress = common.Address{}
)
