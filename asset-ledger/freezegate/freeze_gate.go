// Package freezegate implements one-way configuration latches. A category
// (or a category scoped to a subject, such as the cap of one class) starts
// mutable and can be frozen exactly once; nothing unfreezes it.
package freezegate

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

type Category uint8

const (
	TypeRange Category = iota + 1
	SupplyCap
	URI
	Royalty
	Minters
	Registration
	HoldingThreshold
)

var categoryNames = map[Category]string{
	TypeRange:        "typeRange",
	SupplyCap:        "supplyCap",
	URI:              "uri",
	Royalty:          "royalty",
	Minters:          "minters",
	Registration:     "registration",
	HoldingThreshold: "holdingThreshold",
}

var (
	ErrAlreadyFrozen   = errors.New("already frozen")
	ErrUnknownCategory = errors.New("unknown freeze category")
)

// Categories lists every category in declaration order.
func Categories() []Category {
	all := make([]Category, 0, len(categoryNames))
	for c := TypeRange; c <= HoldingThreshold; c++ {
		all = append(all, c)
	}
	return all
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var freezeSalt = []byte("assetLedgerFreeze")

// unscoped latches use a distinct marker so that no subject can collide with them
const (
	unscoped byte = 0
	scoped   byte = 1
)

type Gate struct {
	acc storageutil.Account
}

func New(acc storageutil.Account) *Gate {
	return &Gate{acc: acc}
}

func latchSlot(c Category, marker byte, subject common.Hash) common.Hash {
	return storageutil.Slot(freezeSalt, []byte{byte(c), marker}, subject.Bytes())
}

func (g *Gate) IsFrozen(c Category) bool {
	return g.acc.Bool(latchSlot(c, unscoped, common.Hash{}))
}

func (g *Gate) Freeze(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	if g.IsFrozen(c) {
		return fmt.Errorf("%w: %s", ErrAlreadyFrozen, c)
	}
	g.acc.SetBool(latchSlot(c, unscoped, common.Hash{}), true)
	return nil
}

func (g *Gate) IsFrozenFor(c Category, subject common.Hash) bool {
	return g.acc.Bool(latchSlot(c, scoped, subject))
}

func (g *Gate) FreezeFor(c Category, subject common.Hash) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	if g.IsFrozenFor(c, subject) {
		return fmt.Errorf("%w: %s %s", ErrAlreadyFrozen, c, subject.Hex())
	}
	g.acc.SetBool(latchSlot(c, scoped, subject), true)
	return nil
}

// Check returns frozenErr when the category is frozen. Mutators call it
// before touching any state.
func (g *Gate) Check(c Category, frozenErr error) error {
	if g.IsFrozen(c) {
		return frozenErr
	}
	return nil
}

func (g *Gate) CheckFor(c Category, subject common.Hash, frozenErr error) error {
	if g.IsFrozenFor(c, subject) {
		return frozenErr
	}
	return nil
}
