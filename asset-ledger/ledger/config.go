package ledger

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/policy"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/stateblob"
)

// Kind is the shape of the assets a ledger holds.
type Kind uint8

const (
	// KindUnique ledgers hold individually identifiable instances; every
	// instance is one unit of its class.
	KindUnique Kind = iota + 1
	// KindMulti ledgers hold arbitrary amounts of many classes.
	KindMulti
	// KindFungible ledgers hold amounts of the single class 0.
	KindFungible
)

func (k Kind) String() string {
	switch k {
	case KindUnique:
		return "unique"
	case KindMulti:
		return "multi"
	case KindFungible:
		return "fungible"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "unique":
		return KindUnique, nil
	case "multi":
		return KindMulti, nil
	case "fungible":
		return KindFungible, nil
	default:
		return 0, fmt.Errorf("unknown ledger kind %q", s)
	}
}

// FungibleClass is the only class of a fungible ledger.
const FungibleClass uint64 = 0

var ErrInvalidConfig = errors.New("invalid ledger config")

// Config is fixed at deployment and stored in the ledger account.
type Config struct {
	Kind         Kind                    `json:"kind"`
	Policy       policy.ID               `json:"policy"`
	ClassMode    classes.Mode            `json:"classMode"`
	MinType      uint64                  `json:"minType"`
	MaxType      uint64                  `json:"maxType"`
	Owner        common.Address          `json:"owner"`
	SelfTransfer policy.SelfTransferMode `json:"selfTransfer"`
}

func (c *Config) Validate() error {
	if _, err := policy.New(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Owner == (common.Address{}) {
		return fmt.Errorf("%w: owner is the zero address", ErrInvalidConfig)
	}
	if c.SelfTransfer != policy.SelfTransferNoop && c.SelfTransfer != policy.SelfTransferRestart {
		return fmt.Errorf("%w: self-transfer mode %s", ErrInvalidConfig, c.SelfTransfer)
	}

	switch c.ClassMode {
	case classes.ModeRange:
		if c.MinType > c.MaxType {
			return fmt.Errorf("%w: min type %d > max type %d", ErrInvalidConfig, c.MinType, c.MaxType)
		}
	case classes.ModeExplicit:
		if c.MinType != 0 || c.MaxType != 0 {
			return fmt.Errorf("%w: explicit class mode takes no type range", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: class mode %s", ErrInvalidConfig, c.ClassMode)
	}

	switch c.Kind {
	case KindUnique, KindMulti:
	case KindFungible:
		if c.ClassMode != classes.ModeRange || c.MinType != FungibleClass || c.MaxType != FungibleClass {
			return fmt.Errorf("%w: fungible ledgers use the single class range [0,0]", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrInvalidConfig, c.Kind)
	}

	return nil
}

var configKey = crypto.Keccak256Hash([]byte("assetLedgerConfig"))

func storeConfig(acc storageutil.Account, cfg Config) error {
	buf := new(bytes.Buffer)
	if err := rlp.Encode(buf, &cfg); err != nil {
		return fmt.Errorf("failed to encode ledger config: %w", err)
	}
	stateblob.SetBlob(acc, configKey, buf.Bytes())
	return nil
}

func loadConfig(acc storageutil.Account) (*Config, error) {
	d := stateblob.GetBlob(acc, configKey)
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotDeployed, acc.Address.Hex())
	}

	cfg := &Config{}
	if err := rlp.DecodeBytes(d, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode ledger config: %w", err)
	}
	return cfg, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
