package ledger

import (
	"errors"

	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/holding"
	"github.com/srounce/assetkit/asset-ledger/instances"
	"github.com/srounce/assetkit/asset-ledger/minters"
	"github.com/srounce/assetkit/asset-ledger/policy"
	"github.com/srounce/assetkit/asset-ledger/supply"
)

var (
	ErrAlreadyDeployed     = errors.New("ledger already deployed")
	ErrNotDeployed         = errors.New("ledger not deployed")
	ErrNotOwner            = errors.New("caller is not the ledger owner")
	ErrNotInstanceOwner    = errors.New("address does not own the instance")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrWrongKind           = errors.New("operation not supported by this ledger kind")
	ErrLengthMismatch      = errors.New("batch length mismatch")
	ErrURIFrozen           = errors.New("uri is frozen")
	ErrInvalidEnv          = errors.New("invalid environment")
)

// ErrorKind is the coarse taxonomy callers branch on.
type ErrorKind uint8

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindAuthorization
	ErrorKindInvariant
	ErrorKindFrozen
	ErrorKindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindAuthorization:
		return "authorization"
	case ErrorKindInvariant:
		return "invariant"
	case ErrorKindFrozen:
		return "frozen"
	case ErrorKindNotFound:
		return "notFound"
	default:
		return "unknown"
	}
}

// The lists are checked in order; not-found precedes invariant because
// holding.ErrUnknownClass wraps registry invariant errors.
var (
	authorizationErrors = []error{
		minters.ErrUnauthorized,
		ErrNotOwner,
		ErrNotInstanceOwner,
	}
	frozenErrors = []error{
		freezegate.ErrAlreadyFrozen,
		minters.ErrRegistryFrozen,
		classes.ErrRangeFrozen,
		classes.ErrRegistrationFrozen,
		supply.ErrCapFrozen,
		holding.ErrThresholdFrozen,
		ErrURIFrozen,
	}
	notFoundErrors = []error{
		holding.ErrUnknownClass,
		instances.ErrNonexistentInstance,
		minters.ErrNotMinter,
		ErrNotDeployed,
	}
	invariantErrors = []error{
		classes.ErrUnregistered,
		classes.ErrOutOfRange,
		classes.ErrAlreadyRegistered,
		classes.ErrInvalidRange,
		classes.ErrWrongMode,
		supply.ErrInvalidCap,
		supply.ErrCapExceeded,
		supply.ErrSupplyUnderflow,
		holding.ErrInCirculation,
		policy.ErrSoulbound,
		policy.ErrInvalidMutation,
		minters.ErrInvalidAddress,
		minters.ErrAlreadyMinter,
		instances.ErrMetadataTooLarge,
		ErrInsufficientBalance,
		ErrInvalidAddress,
		ErrWrongKind,
		ErrLengthMismatch,
		ErrAlreadyDeployed,
		ErrInvalidConfig,
		ErrInvalidEnv,
		freezegate.ErrUnknownCategory,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// Classify sorts an error returned by the ledger into the error taxonomy.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindUnknown
	case matches(err, authorizationErrors):
		return ErrorKindAuthorization
	case matches(err, frozenErrors):
		return ErrorKindFrozen
	case matches(err, notFoundErrors):
		return ErrorKindNotFound
	case matches(err, invariantErrors):
		return ErrorKindInvariant
	default:
		return ErrorKindUnknown
	}
}
