// Package ledgerapi exposes the read side of a ledger, and the event index
// when one is attached, as the "ledger" JSON-RPC namespace.
package ledgerapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/srounce/assetkit/asset-ledger/eventindex"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/ledger"
)

const Namespace = "ledger"

var ErrNoIndex = errors.New("no event index attached")

// maxLogs bounds a single getLogs response.
const maxLogs = 10_000

type InstanceInfo struct {
	ID          hexutil.Uint64 `json:"id"`
	Class       hexutil.Uint64 `json:"class"`
	Owner       common.Address `json:"owner"`
	FirstOwner  common.Address `json:"firstOwner"`
	User        common.Address `json:"user"`
	UserExpires hexutil.Uint64 `json:"userExpires"`
	Metadata    hexutil.Bytes  `json:"metadata,omitempty"`
}

type LogFilter struct {
	Event     string          `json:"event,omitempty"`
	Account   *common.Address `json:"account,omitempty"`
	FromBlock hexutil.Uint64  `json:"fromBlock,omitempty"`
	ToBlock   hexutil.Uint64  `json:"toBlock,omitempty"`
	Limit     hexutil.Uint64  `json:"limit,omitempty"`
}

type ledgerAPI struct {
	ledger *ledger.Ledger
	index  *eventindex.Index
	now    func() uint64
}

// NewServer returns an RPC server serving the ledger namespace. index may be
// nil, in which case getLogs fails with ErrNoIndex.
func NewServer(l *ledger.Ledger, index *eventindex.Index) (*rpc.Server, error) {
	server := rpc.NewServer()
	err := server.RegisterName(Namespace, &ledgerAPI{
		ledger: l,
		index:  index,
		now:    func() uint64 { return uint64(time.Now().Unix()) },
	})
	if err != nil {
		server.Stop()
		return nil, fmt.Errorf("failed to register ledger api: %w", err)
	}
	return server, nil
}

// at resolves an optional point in time, defaulting to now.
func (api *ledgerAPI) at(t *hexutil.Uint64) uint64 {
	if t == nil || *t == 0 {
		return api.now()
	}
	return uint64(*t)
}

func (api *ledgerAPI) Config() ledger.Config {
	return api.ledger.Config()
}

func (api *ledgerAPI) BalanceOf(holder common.Address, class hexutil.Uint64) *hexutil.U256 {
	return (*hexutil.U256)(api.ledger.BalanceOf(holder, uint64(class)))
}

func (api *ledgerAPI) Supply(class hexutil.Uint64) (*hexutil.U256, error) {
	supply, err := api.ledger.Supply(uint64(class))
	if err != nil {
		return nil, err
	}
	return (*hexutil.U256)(supply), nil
}

func (api *ledgerAPI) TotalSupply() *hexutil.U256 {
	return (*hexutil.U256)(api.ledger.TotalSupply())
}

func (api *ledgerAPI) Cap(class hexutil.Uint64) (*hexutil.U256, error) {
	limit, err := api.ledger.Cap(uint64(class))
	if err != nil {
		return nil, err
	}
	return (*hexutil.U256)(limit), nil
}

func (api *ledgerAPI) GlobalCap() *hexutil.U256 {
	return (*hexutil.U256)(api.ledger.GlobalCap())
}

func (api *ledgerAPI) HoldingPeriod(holder common.Address, class hexutil.Uint64, at *hexutil.Uint64) (hexutil.Uint64, error) {
	period, err := api.ledger.HoldingPeriod(holder, uint64(class), api.at(at))
	return hexutil.Uint64(period), err
}

func (api *ledgerAPI) IsMinter(addr common.Address) bool {
	return api.ledger.IsMinter(addr)
}

func (api *ledgerAPI) Minters() []common.Address {
	return api.ledger.Minters()
}

// Frozen maps every freeze category name to its latch state.
func (api *ledgerAPI) Frozen() map[string]bool {
	frozen := map[string]bool{}
	for _, c := range freezegate.Categories() {
		frozen[c.String()] = api.ledger.IsFrozen(c)
	}
	return frozen
}

func (api *ledgerAPI) GetInstance(id hexutil.Uint64, at *hexutil.Uint64) (*InstanceInfo, error) {
	owner, err := api.ledger.OwnerOf(uint64(id))
	if err != nil {
		return nil, err
	}
	firstOwner, err := api.ledger.FirstOwnerOf(uint64(id))
	if err != nil {
		return nil, err
	}
	class, err := api.ledger.ClassOf(uint64(id))
	if err != nil {
		return nil, err
	}
	user, err := api.ledger.UserOf(ledger.Env{Time: api.at(at)}, uint64(id))
	if err != nil {
		return nil, err
	}
	expires, err := api.ledger.UserExpires(uint64(id))
	if err != nil {
		return nil, err
	}
	metadata, err := api.ledger.InstanceMetadata(uint64(id))
	if err != nil {
		return nil, err
	}

	return &InstanceInfo{
		ID:          id,
		Class:       hexutil.Uint64(class),
		Owner:       owner,
		FirstOwner:  firstOwner,
		User:        user,
		UserExpires: hexutil.Uint64(expires),
		Metadata:    metadata,
	}, nil
}

func (api *ledgerAPI) UsedSlots() *hexutil.U256 {
	return (*hexutil.U256)(api.ledger.UsedSlots())
}

// GetLogs reads committed logs back from the event index.
func (api *ledgerAPI) GetLogs(ctx context.Context, filter LogFilter) ([]*types.Log, error) {
	if api.index == nil {
		return nil, ErrNoIndex
	}

	f := eventindex.Filter{
		Event:     filter.Event,
		FromBlock: uint64(filter.FromBlock),
		ToBlock:   uint64(filter.ToBlock),
		Limit:     uint64(filter.Limit),
	}
	if filter.Account != nil {
		f.Account = *filter.Account
	}
	if f.Limit == 0 || f.Limit > maxLogs {
		f.Limit = maxLogs
	}

	result := []*types.Log{}
	for ev, err := range api.index.Events(ctx, api.ledger.Address(), f) {
		if err != nil {
			return nil, err
		}
		l := ev.Log(api.ledger.Address())
		l.TxIndex = uint(ev.TransactionIndex)
		l.Index = uint(ev.LogIndex)
		result = append(result, l)
	}

	return result, nil
}
