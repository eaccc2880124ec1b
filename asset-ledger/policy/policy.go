// Package policy decides which balance mutations a ledger permits. The
// variant is chosen at deployment and cannot be switched afterwards.
package policy

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrSoulbound       = errors.New("soulbound: transfers are not permitted")
	ErrInvalidMutation = errors.New("mutation has neither sender nor recipient")
	ErrUnknownPolicy   = errors.New("unknown transfer policy")
)

type Kind uint8

const (
	KindMint Kind = iota + 1
	KindBurn
	KindTransfer
	KindSelfTransfer
)

func (k Kind) String() string {
	switch k {
	case KindMint:
		return "mint"
	case KindBurn:
		return "burn"
	case KindTransfer:
		return "transfer"
	case KindSelfTransfer:
		return "selfTransfer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Classify names the mutation from the zero-ness of its endpoints; the zero
// address stands for "none".
func Classify(from, to common.Address) (Kind, error) {
	zero := common.Address{}
	switch {
	case from == zero && to == zero:
		return 0, ErrInvalidMutation
	case from == zero:
		return KindMint, nil
	case to == zero:
		return KindBurn, nil
	case from == to:
		return KindSelfTransfer, nil
	default:
		return KindTransfer, nil
	}
}

type Policy interface {
	ID() ID
	Check(kind Kind) error
}

type ID uint8

const (
	OpenID ID = iota + 1
	SoulboundID
)

func (id ID) String() string {
	switch id {
	case OpenID:
		return "open"
	case SoulboundID:
		return "soulbound"
	default:
		return fmt.Sprintf("policy(%d)", uint8(id))
	}
}

func ParseID(s string) (ID, error) {
	switch s {
	case "open":
		return OpenID, nil
	case "soulbound":
		return SoulboundID, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// New returns the policy implementation for id.
func New(id ID) (Policy, error) {
	switch id {
	case OpenID:
		return Open{}, nil
	case SoulboundID:
		return Soulbound{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, uint8(id))
	}
}

// Open permits mint, burn and transfer.
type Open struct{}

func (Open) ID() ID { return OpenID }

func (Open) Check(Kind) error { return nil }

// Soulbound permits only mint and burn.
type Soulbound struct{}

func (Soulbound) ID() ID { return SoulboundID }

func (Soulbound) Check(kind Kind) error {
	if kind == KindTransfer || kind == KindSelfTransfer {
		return ErrSoulbound
	}
	return nil
}
