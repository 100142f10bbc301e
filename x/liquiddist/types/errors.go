package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
)

// NOTE: Error status code must start from 2.
var (
	// ErrIntervalNotElapsed is returned when the distribution interval has not passed since the last cycle.
	ErrIntervalNotElapsed = sdkerrors.Register(ModuleName, 2, "distribution interval not elapsed")
	// ErrNoStakeToDistribute is returned when the staking source reports zero total stake.
	ErrNoStakeToDistribute = sdkerrors.Register(ModuleName, 3, "no stake to distribute")
	// ErrCapExceeded is returned when a cycle would push an asset over its cumulative cap.
	ErrCapExceeded = sdkerrors.Register(ModuleName, 4, "distribution cap exceeded")
	// ErrMintFailure is returned when a minting collaborator fails mid-cycle.
	ErrMintFailure = sdkerrors.Register(ModuleName, 5, "mint failure")
	// ErrAlreadyInitialized is returned on a second initialization attempt.
	ErrAlreadyInitialized = sdkerrors.Register(ModuleName, 6, "already initialized")
	// ErrNotInitialized is returned when the engine is used before initialization.
	ErrNotInitialized = sdkerrors.Register(ModuleName, 7, "not initialized")
	// ErrInvalidSnapshot is returned when the staking snapshot is inconsistent.
	ErrInvalidSnapshot = sdkerrors.Register(ModuleName, 8, "invalid staking snapshot")
	// ErrInvalidConfig is returned for malformed configuration or genesis.
	ErrInvalidConfig = sdkerrors.Register(ModuleName, 9, "invalid config")
	// ErrInvalidAuthority is returned when a governance-only operation is called by another address.
	ErrInvalidAuthority = sdkerrors.Register(ModuleName, 10, "invalid authority")
	// ErrUnauthorizedTrigger is returned when the trigger policy rejects the caller.
	ErrUnauthorizedTrigger = sdkerrors.Register(ModuleName, 11, "caller may not trigger distribution")
	// ErrDistributionsHalted is returned while distributions are halted for reconciliation.
	ErrDistributionsHalted = sdkerrors.Register(ModuleName, 12, "distributions halted")
	// ErrUnknownCollaborator is returned when an identifier resolves to no staking source or minter.
	ErrUnknownCollaborator = sdkerrors.Register(ModuleName, 13, "unknown collaborator")
)

// CapExceededError reports which asset would cross its cap.
type CapExceededError struct {
	Asset    Asset
	Total    string
	Pool     string
	Cap      string
	NewTotal string
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("%s: %s total %s + pool %s = %s > cap %s",
		ErrCapExceeded.Error(), e.Asset, e.Total, e.Pool, e.NewTotal, e.Cap)
}

// Unwrap makes errors.Is match ErrCapExceeded.
func (e *CapExceededError) Unwrap() error { return ErrCapExceeded }

// Codespace implements the ABCI error coder.
func (e *CapExceededError) Codespace() string { return ErrCapExceeded.Codespace() }

// ABCICode implements the ABCI error coder.
func (e *CapExceededError) ABCICode() uint32 { return ErrCapExceeded.ABCICode() }

// MintFailureError reports the staker and asset whose mint failed, with the collaborator's cause.
// Mints already issued earlier in the same cycle are not reversed by the engine.
type MintFailureError struct {
	Staker string
	Asset  Asset
	Cause  error
}

func (e *MintFailureError) Error() string {
	return fmt.Sprintf("%s: staker %s, %s: %s", ErrMintFailure.Error(), e.Staker, e.Asset, e.Cause)
}

// Unwrap makes errors.Is match both ErrMintFailure and the cause.
func (e *MintFailureError) Unwrap() []error { return []error{ErrMintFailure, e.Cause} }

// Codespace implements the ABCI error coder.
func (e *MintFailureError) Codespace() string { return ErrMintFailure.Codespace() }

// ABCICode implements the ABCI error coder.
func (e *MintFailureError) ABCICode() uint32 { return ErrMintFailure.ABCICode() }
