package policy

import "fmt"

// SelfTransferMode decides what a transfer from a holder to itself does.
type SelfTransferMode uint8

const (
	// SelfTransferNoop leaves all state untouched and emits nothing.
	SelfTransferNoop SelfTransferMode = iota + 1
	// SelfTransferRestart keeps balances and supply but restarts the
	// holder's holding clock, like ledgers whose transfer hook resets the
	// sender and then sets the recipient.
	SelfTransferRestart
)

func (m SelfTransferMode) String() string {
	switch m {
	case SelfTransferNoop:
		return "noop"
	case SelfTransferRestart:
		return "restart"
	default:
		return fmt.Sprintf("selfTransfer(%d)", uint8(m))
	}
}

func ParseSelfTransferMode(s string) (SelfTransferMode, error) {
	switch s {
	case "", "noop":
		return SelfTransferNoop, nil
	case "restart":
		return SelfTransferRestart, nil
	default:
		return 0, fmt.Errorf("unknown self-transfer mode %q", s)
	}
}

func (m SelfTransferMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SelfTransferMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSelfTransferMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
