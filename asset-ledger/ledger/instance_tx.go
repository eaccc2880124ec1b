package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/minters"
)

func one() *uint256.Int {
	return uint256.NewInt(1)
}

// MintInstance creates a new instance of class owned by to and returns its id.
func (tx *Tx) MintInstance(caller, to common.Address, class uint64) (uint64, error) {
	if err := tx.requireKind(KindUnique); err != nil {
		return 0, err
	}
	if err := tx.minters.Require(caller); err != nil {
		return 0, err
	}
	if to == (common.Address{}) {
		return 0, fmt.Errorf("%w: mint to the zero address", ErrInvalidAddress)
	}

	id := tx.instances.Allocate()
	if err := tx.applyMutation(common.Address{}, to, class, one(), id); err != nil {
		return 0, err
	}
	return id, nil
}

// TransferInstance moves instance id from from to to. The caller must be
// from and from must own the instance.
func (tx *Tx) TransferInstance(caller, from, to common.Address, id uint64) error {
	if err := tx.requireKind(KindUnique); err != nil {
		return err
	}
	owner, err := tx.instances.Owner(id)
	if err != nil {
		return err
	}
	if owner != from {
		return fmt.Errorf("%w: %s does not own instance %d", ErrNotInstanceOwner, from.Hex(), id)
	}
	if caller != from {
		return fmt.Errorf("%w: %s may not move instance %d", minters.ErrUnauthorized, caller.Hex(), id)
	}
	if to == (common.Address{}) {
		return fmt.Errorf("%w: transfer to the zero address", ErrInvalidAddress)
	}

	class, err := tx.instances.Class(id)
	if err != nil {
		return err
	}
	return tx.applyMutation(from, to, class, one(), id)
}

// BurnInstance destroys instance id. The caller must own it or be a minter.
func (tx *Tx) BurnInstance(caller common.Address, id uint64) error {
	if err := tx.requireKind(KindUnique); err != nil {
		return err
	}
	owner, err := tx.instances.Owner(id)
	if err != nil {
		return err
	}
	if err := tx.requireMinterOrSelf(caller, owner); err != nil {
		return err
	}

	class, err := tx.instances.Class(id)
	if err != nil {
		return err
	}
	return tx.applyMutation(owner, common.Address{}, class, one(), id)
}

// SetUser delegates use of instance id to user until expires. The zero user
// removes the delegate. Only the instance owner may delegate.
func (tx *Tx) SetUser(caller common.Address, id uint64, user common.Address, expires uint64) error {
	if err := tx.requireKind(KindUnique); err != nil {
		return err
	}
	owner, err := tx.instances.Owner(id)
	if err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("%w: %s does not own instance %d", ErrNotInstanceOwner, caller.Hex(), id)
	}

	if user == (common.Address{}) {
		expires = 0
	}
	tx.instances.SetUser(id, user, expires)
	tx.emitUpdateUser(id, user, expires)
	return nil
}

// SetInstanceMetadata overrides the metadata of instance id. Empty data
// removes the override.
func (tx *Tx) SetInstanceMetadata(caller common.Address, id uint64, data []byte) error {
	if err := tx.requireKind(KindUnique); err != nil {
		return err
	}
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if err := tx.gate.Check(freezegate.URI, ErrURIFrozen); err != nil {
		return err
	}
	if err := tx.instances.Require(id); err != nil {
		return err
	}
	if err := tx.instances.SetMetadata(id, data); err != nil {
		return err
	}
	tx.emitMetadataUpdate(id)
	return nil
}
