package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	pkgerrors "github.com/pkg/errors"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// GetTriggerPolicy returns the stored trigger policy, falling back to the default for unset flags.
func (k Keeper) GetTriggerPolicy(ctx context.Context) (types.TriggerPolicy, error) {
	policy := types.DefaultTriggerPolicy()

	permissionless, err := k.Permissionless.Get(ctx)
	if err == nil {
		policy.Permissionless = permissionless
	} else if !errors.Is(err, collections.ErrNotFound) {
		return types.TriggerPolicy{}, err
	}

	auto, err := k.AutoDistribute.Get(ctx)
	if err == nil {
		policy.AutoDistribute = auto
	} else if !errors.Is(err, collections.ErrNotFound) {
		return types.TriggerPolicy{}, err
	}

	return policy, nil
}

// SetTriggerPolicy updates the trigger policy via governance.
func (k Keeper) SetTriggerPolicy(ctx context.Context, authority string, policy types.TriggerPolicy) error {
	if k.authority != authority {
		return pkgerrors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", k.authority, authority)
	}
	return k.setTriggerPolicy(ctx, policy)
}

func (k Keeper) setTriggerPolicy(ctx context.Context, policy types.TriggerPolicy) error {
	if err := k.Permissionless.Set(ctx, policy.Permissionless); err != nil {
		return err
	}
	return k.AutoDistribute.Set(ctx, policy.AutoDistribute)
}

// IsHalted reports whether distributions are halted pending manual reconciliation.
func (k Keeper) IsHalted(ctx context.Context) (bool, error) {
	halted, err := k.DistributionsHalted.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return false, nil
	}
	return halted, err
}

// HaltDistributions stops all further cycles until ResumeDistributions is called.
func (k Keeper) HaltDistributions(ctx context.Context, reason error) error {
	sdk.UnwrapSDKContext(ctx).Logger().Error(
		"halting liquid distributions, manual reconciliation required",
		"module", types.ModuleName,
		"error", reason,
	)
	return k.DistributionsHalted.Set(ctx, true)
}

// ResumeDistributions clears the halted flag via governance.
func (k Keeper) ResumeDistributions(ctx context.Context, authority string) error {
	if k.authority != authority {
		return pkgerrors.Wrapf(types.ErrInvalidAuthority, "expected %s, got %s", k.authority, authority)
	}
	return k.DistributionsHalted.Set(ctx, false)
}

func (k Keeper) authorizeTrigger(ctx context.Context, caller string) error {
	if caller == k.authority {
		return nil
	}
	policy, err := k.GetTriggerPolicy(ctx)
	if err != nil {
		return err
	}
	if !policy.Permissionless {
		return errorsmod.Wrapf(types.ErrUnauthorizedTrigger, "caller %s is not the authority", caller)
	}
	return nil
}
