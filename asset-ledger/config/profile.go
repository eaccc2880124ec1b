// Package config reads deployment profiles: a TOML file describing a ledger's
// fixed configuration and the administrative operations run right after it
// is deployed.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/address"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/ledgertx"
	"github.com/srounce/assetkit/asset-ledger/policy"
)

var ErrInvalidProfile = errors.New("invalid deployment profile")

// Profile is the decoded TOML document. Amounts are strings so that values
// beyond 64 bits survive; both decimal and 0x-prefixed hex are accepted.
type Profile struct {
	Ledger  LedgerSection  `toml:"ledger"`
	Minters []string       `toml:"minters"`
	Classes []ClassSection `toml:"class"`
	Freeze  []string       `toml:"freeze"`
}

type LedgerSection struct {
	Address      string `toml:"address"`
	Kind         string `toml:"kind"`
	Policy       string `toml:"policy"`
	ClassMode    string `toml:"class_mode"`
	MinType      uint64 `toml:"min_type"`
	MaxType      uint64 `toml:"max_type"`
	Owner        string `toml:"owner"`
	SelfTransfer string `toml:"self_transfer"`
	GlobalCap    string `toml:"global_cap"`
}

type ClassSection struct {
	ID        uint64 `toml:"id"`
	Threshold string `toml:"threshold"`
	Cap       string `toml:"cap"`
	FreezeCap bool   `toml:"freeze_cap"`
}

func Load(path string) (*Profile, error) {
	p := &Profile{}
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func Parse(data string) (*Profile, error) {
	p := &Profile{}
	md, err := toml.Decode(data, p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return p, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidProfile, strings.Join(keys, ", "))
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q is not an address", ErrInvalidProfile, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount reads a decimal or 0x-prefixed hex uint256. The empty string is
// zero.
func ParseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %w", ErrInvalidProfile, s, err)
	}
	return v, nil
}

// LedgerAddress is the account the ledger is deployed to.
func (p *Profile) LedgerAddress() (common.Address, error) {
	if p.Ledger.Address == "" {
		return address.DefaultLedgerAddress, nil
	}
	return parseAddress(p.Ledger.Address)
}

func (p *Profile) LedgerConfig() (ledger.Config, error) {
	s := p.Ledger
	cfg := ledger.Config{MinType: s.MinType, MaxType: s.MaxType}

	var err error
	if cfg.Kind, err = ledger.ParseKind(s.Kind); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	policyName := s.Policy
	if policyName == "" {
		policyName = policy.OpenID.String()
	}
	if cfg.Policy, err = policy.ParseID(policyName); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	mode := s.ClassMode
	if mode == "" {
		mode = classes.ModeRange.String()
	}
	if cfg.ClassMode, err = classes.ParseMode(mode); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if cfg.SelfTransfer, err = policy.ParseSelfTransferMode(s.SelfTransfer); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if cfg.Owner, err = parseAddress(s.Owner); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	return cfg, nil
}

// Genesis returns the operations the owner runs right after deployment. The
// transaction has no operations when the profile only fixes the config.
func (p *Profile) Genesis() (*ledgertx.LedgerTransaction, error) {
	cfg, err := p.LedgerConfig()
	if err != nil {
		return nil, err
	}

	tx := &ledgertx.LedgerTransaction{Operations: []ledgertx.Operation{}}
	add := func(op ledgertx.Operation) {
		tx.Operations = append(tx.Operations, op)
	}

	for _, m := range p.Minters {
		minter, err := parseAddress(m)
		if err != nil {
			return nil, err
		}
		add(ledgertx.Operation{Kind: ledgertx.OpAddMinter, User: minter})
	}

	seen := map[uint64]bool{}
	for _, c := range p.Classes {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: class %d listed twice", ErrInvalidProfile, c.ID)
		}
		seen[c.ID] = true

		threshold, err := ParseAmount(c.Threshold)
		if err != nil {
			return nil, err
		}
		limit, err := ParseAmount(c.Cap)
		if err != nil {
			return nil, err
		}

		switch {
		case cfg.ClassMode == classes.ModeExplicit:
			add(ledgertx.Operation{Kind: ledgertx.OpRegisterClass, Class: c.ID, Amount: threshold})
		case !threshold.IsZero():
			add(ledgertx.Operation{Kind: ledgertx.OpSetThreshold, Class: c.ID, Amount: threshold})
		}
		if !limit.IsZero() {
			add(ledgertx.Operation{Kind: ledgertx.OpSetCap, Class: c.ID, Amount: limit})
		}
		if c.FreezeCap {
			add(ledgertx.Operation{Kind: ledgertx.OpFreezeCap, Class: c.ID})
		}
	}

	if p.Ledger.GlobalCap != "" {
		limit, err := ParseAmount(p.Ledger.GlobalCap)
		if err != nil {
			return nil, err
		}
		add(ledgertx.Operation{Kind: ledgertx.OpSetGlobalCap, Amount: limit})
	}

	for _, name := range p.Freeze {
		c, err := freezegate.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
		}
		add(ledgertx.Operation{Kind: ledgertx.OpFreeze, Category: c})
	}

	return tx, nil
}
