package ledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/address"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/holding"
	"github.com/srounce/assetkit/asset-ledger/instances"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/asset-ledger/minters"
	"github.com/srounce/assetkit/asset-ledger/policy"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/asset-ledger/supply"
	"github.com/stretchr/testify/require"
)

var (
	owner  = common.HexToAddress("0x0000000000000000000000000000000000000001")
	minter = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob    = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func env(t uint64) ledger.Env {
	return ledger.Env{BlockNumber: 1, Time: t}
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func multiConfig() ledger.Config {
	return ledger.Config{
		Kind:         ledger.KindMulti,
		Policy:       policy.OpenID,
		ClassMode:    classes.ModeRange,
		MinType:      1,
		MaxType:      5,
		Owner:        owner,
		SelfTransfer: policy.SelfTransferNoop,
	}
}

// deploy returns a ledger with minter already registered.
func deploy(t *testing.T, cfg ledger.Config) (*ledger.Ledger, *statedb.StateDB) {
	db := statedb.NewMemory()
	t.Cleanup(func() { db.Close() })

	l, err := ledger.Deploy(db, address.DefaultLedgerAddress, cfg)
	require.NoError(t, err)

	_, err = l.AddMinter(env(1), owner, minter)
	require.NoError(t, err)

	return l, db
}

func topics(entries []*types.Log) []common.Hash {
	out := []common.Hash{}
	for _, l := range entries {
		out = append(out, l.Topics[0])
	}
	return out
}

func TestDeployAndOpen(t *testing.T) {
	l, db := deploy(t, multiConfig())

	_, err := ledger.Deploy(db, address.DefaultLedgerAddress, multiConfig())
	require.ErrorIs(t, err, ledger.ErrAlreadyDeployed)

	opened, err := ledger.Open(db, address.DefaultLedgerAddress)
	require.NoError(t, err)
	require.Equal(t, l.Config(), opened.Config())
	require.True(t, opened.IsMinter(minter))

	_, err = ledger.Open(db, common.HexToAddress("0x1234"))
	require.ErrorIs(t, err, ledger.ErrNotDeployed)
	require.Equal(t, ledger.ErrorKindNotFound, ledger.Classify(err))
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(c *ledger.Config){
		"unknown policy":       func(c *ledger.Config) { c.Policy = 0 },
		"zero owner":           func(c *ledger.Config) { c.Owner = common.Address{} },
		"inverted range":       func(c *ledger.Config) { c.MinType, c.MaxType = 5, 1 },
		"explicit with bounds": func(c *ledger.Config) { c.ClassMode = classes.ModeExplicit },
		"fungible with range":  func(c *ledger.Config) { c.Kind = ledger.KindFungible },
		"unknown kind":         func(c *ledger.Config) { c.Kind = 9 },
		"unknown self mode":    func(c *ledger.Config) { c.SelfTransfer = 9 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := multiConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ledger.ErrInvalidConfig)
		})
	}

	cfg := multiConfig()
	require.NoError(t, cfg.Validate())
}

func TestInvalidEnv(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.Mint(ledger.Env{BlockNumber: 3}, minter, alice, 1, n(1))
	require.ErrorIs(t, err, ledger.ErrInvalidEnv)
}

func TestMintTransferBurn(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	entries, err := l.Mint(env(100), minter, alice, 1, n(10))
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.LedgerTransfer}, topics(entries))
	require.Equal(t, address.DefaultLedgerAddress, entries[0].Address)

	_, err = l.Transfer(env(110), alice, alice, bob, 1, n(4))
	require.NoError(t, err)

	_, err = l.Burn(env(120), bob, bob, 1, n(1))
	require.NoError(t, err)

	require.Equal(t, n(6), l.BalanceOf(alice, 1))
	require.Equal(t, n(3), l.BalanceOf(bob, 1))

	s, err := l.Supply(1)
	require.NoError(t, err)
	require.Equal(t, n(9), s)
	require.Equal(t, n(9), l.TotalSupply())
}

func TestAuthorization(t *testing.T) {
	l, _ := deploy(t, multiConfig())
	_, err := l.Mint(env(100), minter, alice, 1, n(10))
	require.NoError(t, err)

	_, err = l.Mint(env(100), alice, alice, 1, n(1))
	require.ErrorIs(t, err, minters.ErrUnauthorized)

	_, err = l.Transfer(env(100), bob, alice, bob, 1, n(1))
	require.ErrorIs(t, err, minters.ErrUnauthorized)
	require.Equal(t, ledger.ErrorKindAuthorization, ledger.Classify(err))

	// minters may burn on behalf of holders, others may not
	_, err = l.Burn(env(100), bob, alice, 1, n(1))
	require.ErrorIs(t, err, minters.ErrUnauthorized)
	_, err = l.Burn(env(100), minter, alice, 1, n(1))
	require.NoError(t, err)

	_, err = l.AddMinter(env(100), alice, bob)
	require.ErrorIs(t, err, ledger.ErrNotOwner)
}

func TestFailedCallLeavesNoTrace(t *testing.T) {
	l, db := deploy(t, multiConfig())
	_, err := l.Mint(env(100), minter, alice, 1, n(10))
	require.NoError(t, err)

	before, err := db.Dump(address.DefaultLedgerAddress)
	require.NoError(t, err)

	// the second element is out of range after the first already minted
	entries, err := l.MintBatch(env(200), minter, bob, []uint64{2, 9}, []*uint256.Int{n(5), n(5)})
	require.ErrorIs(t, err, classes.ErrOutOfRange)
	require.Contains(t, err.Error(), "batch element 1")
	require.Nil(t, entries)
	require.Equal(t, ledger.ErrorKindInvariant, ledger.Classify(err))

	after, err := db.Dump(address.DefaultLedgerAddress)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, n(0), l.BalanceOf(bob, 2))
}

func TestBatches(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.MintBatch(env(100), minter, alice, []uint64{1, 2, 3}, []*uint256.Int{n(1), n(2), n(3)})
	require.NoError(t, err)

	_, err = l.TransferBatch(env(100), alice, alice, bob, []uint64{2, 3}, []*uint256.Int{n(2), n(1)})
	require.NoError(t, err)

	_, err = l.BurnBatch(env(100), bob, bob, []uint64{3}, []*uint256.Int{n(1)})
	require.NoError(t, err)

	require.Equal(t, n(1), l.BalanceOf(alice, 1))
	require.Equal(t, n(2), l.BalanceOf(bob, 2))
	require.Equal(t, n(2), l.BalanceOf(alice, 3))
	require.Equal(t, n(0), l.BalanceOf(bob, 3))

	_, err = l.MintBatch(env(100), minter, alice, []uint64{1}, []*uint256.Int{})
	require.ErrorIs(t, err, ledger.ErrLengthMismatch)

	_, err = l.AirdropBatch(env(100), minter, []common.Address{alice, bob}, 4, n(7))
	require.NoError(t, err)
	require.Equal(t, n(7), l.BalanceOf(bob, 4))
}

func TestCaps(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.SetCap(env(100), owner, 1, n(5))
	require.NoError(t, err)

	entries, err := l.FreezeCap(env(100), owner, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, logs.Frozen, entries[0].Topics[0])
	require.Equal(t, common.Hash{31: byte(freezegate.SupplyCap)}, entries[0].Topics[1])
	require.Equal(t, common.Hash{31: 1}, entries[0].Topics[2])

	_, err = l.Mint(env(100), minter, alice, 1, n(6))
	require.ErrorIs(t, err, supply.ErrCapExceeded)

	_, err = l.SetCap(env(100), owner, 1, n(50))
	require.ErrorIs(t, err, supply.ErrCapFrozen)
	require.Equal(t, ledger.ErrorKindFrozen, ledger.Classify(err))

	_, err = l.SetGlobalCap(env(100), owner, n(3))
	require.NoError(t, err)
	_, err = l.Mint(env(100), minter, alice, 2, n(4))
	require.ErrorIs(t, err, supply.ErrCapExceeded)
	require.Equal(t, n(3), l.GlobalCap())
}

func TestHoldingPeriodAcrossTransfers(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.SetThreshold(env(1), owner, 1, n(10))
	require.NoError(t, err)

	entries, err := l.Mint(env(100), minter, alice, 1, n(10))
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.LedgerTransfer, logs.HoldingStarted}, topics(entries))

	period, err := l.HoldingPeriod(alice, 1, 600)
	require.NoError(t, err)
	require.Equal(t, uint64(500), period)

	entries, err = l.Transfer(env(700), alice, alice, bob, 1, n(1))
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.LedgerTransfer, logs.HoldingReset}, topics(entries))

	period, err = l.HoldingPeriod(alice, 1, 800)
	require.NoError(t, err)
	require.Zero(t, period)

	_, err = l.HoldingPeriod(alice, 9, 800)
	require.Error(t, err)
	require.Equal(t, ledger.ErrorKindNotFound, ledger.Classify(err))
}

func TestSelfTransfer(t *testing.T) {

	t.Run("noop", func(t *testing.T) {
		l, db := deploy(t, multiConfig())
		_, err := l.Mint(env(100), minter, alice, 1, n(3))
		require.NoError(t, err)

		before, err := db.Dump(address.DefaultLedgerAddress)
		require.NoError(t, err)

		entries, err := l.Transfer(env(200), alice, alice, alice, 1, n(99))
		require.NoError(t, err)
		require.Empty(t, entries)

		after, err := db.Dump(address.DefaultLedgerAddress)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("restart", func(t *testing.T) {
		cfg := multiConfig()
		cfg.SelfTransfer = policy.SelfTransferRestart
		l, _ := deploy(t, cfg)

		_, err := l.SetThreshold(env(1), owner, 1, n(2))
		require.NoError(t, err)
		_, err = l.Mint(env(100), minter, alice, 1, n(3))
		require.NoError(t, err)

		entries, err := l.Transfer(env(400), alice, alice, alice, 1, n(1))
		require.NoError(t, err)
		require.Equal(t, []common.Hash{logs.LedgerTransfer, logs.HoldingStarted}, topics(entries))

		since, err := l.HoldingSince(alice, 1)
		require.NoError(t, err)
		require.Equal(t, uint64(400), since)
		require.Equal(t, n(3), l.BalanceOf(alice, 1))

		_, err = l.Transfer(env(500), alice, alice, alice, 1, n(4))
		require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	})

	t.Run("soulbound rejects", func(t *testing.T) {
		cfg := multiConfig()
		cfg.Policy = policy.SoulboundID
		l, _ := deploy(t, cfg)
		_, err := l.Mint(env(100), minter, alice, 1, n(3))
		require.NoError(t, err)

		_, err = l.Transfer(env(200), alice, alice, alice, 1, n(1))
		require.ErrorIs(t, err, policy.ErrSoulbound)

		_, err = l.Burn(env(200), alice, alice, 1, n(3))
		require.NoError(t, err)
	})
}

func uniqueConfig() ledger.Config {
	cfg := multiConfig()
	cfg.Kind = ledger.KindUnique
	return cfg
}

func TestInstances(t *testing.T) {
	l, _ := deploy(t, uniqueConfig())

	_, err := l.Mint(env(100), minter, alice, 1, n(1))
	require.ErrorIs(t, err, ledger.ErrWrongKind)

	id, _, err := l.MintInstance(env(100), minter, alice, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
	require.Equal(t, n(1), l.BalanceOf(alice, 2))

	_, err = l.SetUser(env(100), bob, id, bob, 1000)
	require.ErrorIs(t, err, ledger.ErrNotInstanceOwner)

	entries, err := l.SetUser(env(100), alice, id, bob, 1000)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.UpdateUser}, topics(entries))

	user, err := l.UserOf(env(999), id)
	require.NoError(t, err)
	require.Equal(t, bob, user)
	user, err = l.UserOf(env(1000), id)
	require.NoError(t, err)
	require.Equal(t, common.Address{}, user)

	_, err = l.SetInstanceMetadata(env(100), owner, id, []byte("ipfs://badge"))
	require.NoError(t, err)

	// a transfer drops the delegate
	entries, err = l.TransferInstance(env(200), alice, alice, bob, id)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.LedgerTransfer, logs.UpdateUser}, topics(entries))

	expires, err := l.UserExpires(id)
	require.NoError(t, err)
	require.Zero(t, expires)

	_, err = l.TransferInstance(env(200), alice, alice, bob, id)
	require.ErrorIs(t, err, ledger.ErrNotInstanceOwner)

	// a burn drops the metadata override but keeps the history
	entries, err = l.BurnInstance(env(300), bob, id)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.MetadataUpdate, logs.LedgerTransfer}, topics(entries))

	_, err = l.OwnerOf(id)
	require.ErrorIs(t, err, instances.ErrNonexistentInstance)
	first, err := l.FirstOwnerOf(id)
	require.NoError(t, err)
	require.Equal(t, alice, first)
	require.Equal(t, uint64(1), l.InstanceCount())

	s, err := l.Supply(2)
	require.NoError(t, err)
	require.True(t, s.IsZero())
}

func TestInstanceMetadataFrozen(t *testing.T) {
	l, _ := deploy(t, uniqueConfig())
	id, _, err := l.MintInstance(env(100), minter, alice, 1)
	require.NoError(t, err)

	_, err = l.SetInstanceMetadata(env(100), alice, id, []byte("x"))
	require.ErrorIs(t, err, ledger.ErrNotOwner)

	_, err = l.Freeze(env(100), owner, freezegate.URI)
	require.NoError(t, err)

	_, err = l.SetInstanceMetadata(env(100), owner, id, []byte("x"))
	require.ErrorIs(t, err, ledger.ErrURIFrozen)

	data, err := l.InstanceMetadata(id)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestExplicitClasses(t *testing.T) {
	cfg := multiConfig()
	cfg.ClassMode = classes.ModeExplicit
	cfg.MinType, cfg.MaxType = 0, 0
	l, _ := deploy(t, cfg)

	_, err := l.Mint(env(100), minter, alice, 7, n(1))
	require.ErrorIs(t, err, classes.ErrUnregistered)

	entries, err := l.RegisterClass(env(100), owner, 7, n(1))
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.ClassRegistered}, topics(entries))

	_, err = l.Mint(env(100), minter, alice, 7, n(1))
	require.NoError(t, err)

	ids, err := l.Classes()
	require.NoError(t, err)
	require.Equal(t, []uint64{7}, ids)

	_, _, err = l.TypeRange()
	require.ErrorIs(t, err, classes.ErrWrongMode)

	_, err = l.FreezeClasses(env(100), owner)
	require.NoError(t, err)
	require.True(t, l.IsFrozen(freezegate.Registration))

	_, err = l.RegisterClass(env(100), owner, 8, nil)
	require.ErrorIs(t, err, classes.ErrRegistrationFrozen)
}

func TestUsedSlots(t *testing.T) {
	l, _ := deploy(t, multiConfig())
	base := l.UsedSlots()

	_, err := l.Mint(env(100), minter, alice, 1, n(5))
	require.NoError(t, err)
	afterMint := l.UsedSlots()
	require.True(t, afterMint.Gt(base))

	_, err = l.Burn(env(100), alice, alice, 1, n(5))
	require.NoError(t, err)
	require.Equal(t, base, l.UsedSlots())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		kind ledger.ErrorKind
	}{
		{nil, ledger.ErrorKindUnknown},
		{errors.New("boom"), ledger.ErrorKindUnknown},
		{fmt.Errorf("wrapped: %w", minters.ErrUnauthorized), ledger.ErrorKindAuthorization},
		{ledger.ErrNotOwner, ledger.ErrorKindAuthorization},
		{freezegate.ErrAlreadyFrozen, ledger.ErrorKindFrozen},
		{instances.ErrNonexistentInstance, ledger.ErrorKindNotFound},
		{supply.ErrCapExceeded, ledger.ErrorKindInvariant},
		{policy.ErrSoulbound, ledger.ErrorKindInvariant},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, ledger.Classify(c.err), fmt.Sprint(c.err))
	}
	require.Equal(t, "notFound", ledger.ErrorKindNotFound.String())
}

// requireHoldingConsistent checks that every tracked holder has a start time
// exactly when their balance is at or above the class threshold.
func requireHoldingConsistent(t *testing.T, l *ledger.Ledger, holders []common.Address, classIDs []uint64) {
	t.Helper()
	for _, class := range classIDs {
		threshold, err := l.Threshold(class)
		require.NoError(t, err)
		for _, h := range holders {
			since, err := l.HoldingSince(h, class)
			require.NoError(t, err)
			if threshold.IsZero() {
				require.Zero(t, since, "holder %s class %d", h.Hex(), class)
				continue
			}
			holds := !l.BalanceOf(h, class).Lt(threshold)
			require.Equal(t, holds, since != 0, "holder %s class %d", h.Hex(), class)
		}
	}
}

func TestThresholdChangeWhileInCirculation(t *testing.T) {

	t.Run("raising above a holder's balance", func(t *testing.T) {
		l, _ := deploy(t, multiConfig())

		_, err := l.SetThreshold(env(1), owner, 1, n(100))
		require.NoError(t, err)
		_, err = l.Mint(env(10), minter, alice, 1, n(100))
		require.NoError(t, err)

		_, err = l.SetThreshold(env(20), owner, 1, n(200))
		require.ErrorIs(t, err, holding.ErrInCirculation)
		require.Equal(t, ledger.ErrorKindInvariant, ledger.Classify(err))

		threshold, err := l.Threshold(1)
		require.NoError(t, err)
		require.Equal(t, n(100), threshold)

		period, err := l.HoldingPeriod(alice, 1, 50)
		require.NoError(t, err)
		require.Equal(t, uint64(40), period)
		requireHoldingConsistent(t, l, []common.Address{alice}, []uint64{1})
	})

	t.Run("enabling tracking for an existing holder", func(t *testing.T) {
		l, _ := deploy(t, multiConfig())

		_, err := l.Mint(env(10), minter, bob, 2, n(150))
		require.NoError(t, err)

		_, err = l.SetThreshold(env(20), owner, 2, n(100))
		require.ErrorIs(t, err, holding.ErrInCirculation)
		requireHoldingConsistent(t, l, []common.Address{bob}, []uint64{2})

		// once nothing is held the threshold can change again
		_, err = l.Burn(env(30), bob, bob, 2, n(150))
		require.NoError(t, err)
		_, err = l.SetThreshold(env(40), owner, 2, n(100))
		require.NoError(t, err)

		entries, err := l.Mint(env(50), minter, bob, 2, n(150))
		require.NoError(t, err)
		require.Equal(t, []common.Hash{logs.LedgerTransfer, logs.HoldingStarted}, topics(entries))
		requireHoldingConsistent(t, l, []common.Address{bob}, []uint64{2})
	})
}

func TestHoldingConsistentAfterEveryMutation(t *testing.T) {
	cfg := multiConfig()
	cfg.SelfTransfer = policy.SelfTransferRestart
	l, _ := deploy(t, cfg)

	holders := []common.Address{alice, bob, minter}
	classIDs := []uint64{1, 2, 3}

	_, err := l.SetThreshold(env(1), owner, 1, n(10))
	require.NoError(t, err)
	_, err = l.SetThreshold(env(1), owner, 3, n(1))
	require.NoError(t, err)

	steps := []func(now uint64) ([]*types.Log, error){
		func(now uint64) ([]*types.Log, error) { return l.Mint(env(now), minter, alice, 1, n(25)) },
		func(now uint64) ([]*types.Log, error) { return l.Mint(env(now), minter, bob, 2, n(5)) },
		func(now uint64) ([]*types.Log, error) { return l.Transfer(env(now), alice, alice, bob, 1, n(15)) },
		func(now uint64) ([]*types.Log, error) { return l.Transfer(env(now), alice, alice, alice, 1, n(5)) },
		func(now uint64) ([]*types.Log, error) {
			return l.MintBatch(env(now), minter, minter, []uint64{1, 3}, []*uint256.Int{n(9), n(1)})
		},
		func(now uint64) ([]*types.Log, error) { return l.Transfer(env(now), minter, minter, bob, 3, n(1)) },
		func(now uint64) ([]*types.Log, error) { return l.Burn(env(now), bob, bob, 1, n(6)) },
		func(now uint64) ([]*types.Log, error) {
			return l.AirdropBatch(env(now), minter, []common.Address{alice, bob}, 1, n(1))
		},
		func(now uint64) ([]*types.Log, error) { return l.Transfer(env(now), bob, bob, alice, 1, n(99)) },
		func(now uint64) ([]*types.Log, error) { return l.Burn(env(now), alice, alice, 1, n(11)) },
	}

	for i, step := range steps {
		now := uint64(100 * (i + 1))
		_, err := step(now)
		if i == 8 {
			require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
		} else {
			require.NoError(t, err, "step %d", i)
		}
		requireHoldingConsistent(t, l, holders, classIDs)
	}
}

func TestRaiseMaxType(t *testing.T) {
	cfg := multiConfig()
	cfg.MaxType = 3
	l, _ := deploy(t, cfg)

	_, err := l.Mint(env(100), minter, alice, 4, n(1))
	require.ErrorIs(t, err, classes.ErrOutOfRange)
	require.Equal(t, ledger.ErrorKindInvariant, ledger.Classify(err))

	entries, err := l.SetMaxType(env(100), owner, 4)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{logs.MaxTypeUpdated}, topics(entries))

	_, err = l.Mint(env(100), minter, alice, 4, n(1))
	require.NoError(t, err)
	require.Equal(t, n(1), l.BalanceOf(alice, 4))

	_, err = l.SetMaxType(env(100), owner, 2)
	require.ErrorIs(t, err, classes.ErrInvalidRange)

	_, err = l.FreezeClasses(env(100), owner)
	require.NoError(t, err)
	_, err = l.SetMaxType(env(100), owner, 10)
	require.ErrorIs(t, err, classes.ErrRangeFrozen)
}

func TestFrozenMinterRegistry(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.FreezeMinters(env(100), owner)
	require.NoError(t, err)
	require.True(t, l.IsFrozen(freezegate.Minters))

	_, err = l.AddMinter(env(100), owner, bob)
	require.ErrorIs(t, err, minters.ErrRegistryFrozen)
	require.Equal(t, ledger.ErrorKindFrozen, ledger.Classify(err))

	_, err = l.RemoveMinter(env(100), owner, minter)
	require.ErrorIs(t, err, minters.ErrRegistryFrozen)

	require.True(t, l.IsMinter(minter))
	_, err = l.Mint(env(100), minter, alice, 1, n(1))
	require.NoError(t, err)
}

func TestCapBelowSupply(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.Mint(env(100), minter, alice, 2, n(12))
	require.NoError(t, err)

	_, err = l.SetCap(env(100), owner, 2, n(10))
	require.ErrorIs(t, err, supply.ErrInvalidCap)
	require.Equal(t, ledger.ErrorKindInvariant, ledger.Classify(err))

	_, err = l.SetCap(env(100), owner, 2, n(0))
	require.NoError(t, err)
}

func TestFreezeChecksClassMode(t *testing.T) {
	l, _ := deploy(t, multiConfig())

	_, err := l.Freeze(env(100), owner, freezegate.Registration)
	require.ErrorIs(t, err, classes.ErrWrongMode)
	require.False(t, l.IsFrozen(freezegate.Registration))

	cfg := multiConfig()
	cfg.ClassMode = classes.ModeExplicit
	cfg.MinType, cfg.MaxType = 0, 0
	explicit, _ := deploy(t, cfg)

	_, err = explicit.Freeze(env(100), owner, freezegate.TypeRange)
	require.ErrorIs(t, err, classes.ErrWrongMode)
	require.False(t, explicit.IsFrozen(freezegate.TypeRange))

	_, err = explicit.Freeze(env(100), owner, freezegate.Registration)
	require.NoError(t, err)
}
