package keeper

import (
	"context"
	"errors"
	"math"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// Initialize stores the collaborator identifiers and zeroes the distribution counters.
// It succeeds only once per store.
func (k Keeper) Initialize(ctx context.Context, cfg types.Config) error {
	if err := cfg.ValidateBasic(); err != nil {
		return err
	}

	initialized, err := k.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return types.ErrAlreadyInitialized
	}

	if err := k.validateCollaborators(cfg); err != nil {
		return err
	}

	if err := k.AssetA.Set(ctx, cfg.AssetA); err != nil {
		return err
	}
	if err := k.AssetB.Set(ctx, cfg.AssetB); err != nil {
		return err
	}
	if err := k.StakingSource.Set(ctx, cfg.StakingSource); err != nil {
		return err
	}
	if err := k.TotalDistributedA.Set(ctx, sdkmath.ZeroInt()); err != nil {
		return err
	}
	if err := k.TotalDistributedB.Set(ctx, sdkmath.ZeroInt()); err != nil {
		return err
	}
	return k.LastDistributionHeight.Set(ctx, 0)
}

// IsInitialized reports whether Initialize has run.
func (k Keeper) IsInitialized(ctx context.Context) (bool, error) {
	return k.AssetA.Has(ctx)
}

// GetConfig returns the collaborator identifiers.
func (k Keeper) GetConfig(ctx context.Context) (types.Config, error) {
	assetA, err := k.AssetA.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Config{}, types.ErrNotInitialized
	} else if err != nil {
		return types.Config{}, err
	}
	assetB, err := k.AssetB.Get(ctx)
	if err != nil {
		return types.Config{}, err
	}
	stakingSource, err := k.StakingSource.Get(ctx)
	if err != nil {
		return types.Config{}, err
	}

	return types.Config{
		AssetA:        assetA,
		AssetB:        assetB,
		StakingSource: stakingSource,
	}, nil
}

// GetTotalDistributed returns the cumulative minted amount of the asset.
func (k Keeper) GetTotalDistributed(ctx context.Context, asset types.Asset) (sdkmath.Int, error) {
	item := k.TotalDistributedA
	if asset == types.AssetB {
		item = k.TotalDistributedB
	}
	total, err := item.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return sdkmath.Int{}, types.ErrNotInitialized
	}
	return total, err
}

// GetTotalDistributedA returns the cumulative minted amount of asset A.
func (k Keeper) GetTotalDistributedA(ctx context.Context) (sdkmath.Int, error) {
	return k.GetTotalDistributed(ctx, types.AssetA)
}

// GetTotalDistributedB returns the cumulative minted amount of asset B.
func (k Keeper) GetTotalDistributedB(ctx context.Context) (sdkmath.Int, error) {
	return k.GetTotalDistributed(ctx, types.AssetB)
}

// GetLastDistributionHeight returns the height of the last committed distribution, 0 before the first.
func (k Keeper) GetLastDistributionHeight(ctx context.Context) (uint64, error) {
	height, err := k.LastDistributionHeight.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, types.ErrNotInitialized
	}
	return height, err
}

// NextDistributionHeight returns the first height at which the interval gate opens.
func (k Keeper) NextDistributionHeight(ctx context.Context) (uint64, error) {
	last, err := k.GetLastDistributionHeight(ctx)
	if err != nil {
		return 0, err
	}
	if last > math.MaxUint64-types.DistributionInterval {
		return math.MaxUint64, nil
	}
	return last + types.DistributionInterval, nil
}

// IsDistributionDue reports whether the interval gate is open at currentHeight.
func (k Keeper) IsDistributionDue(ctx context.Context, currentHeight uint64) (bool, error) {
	last, err := k.GetLastDistributionHeight(ctx)
	if err != nil {
		return false, err
	}
	return intervalElapsed(last, currentHeight), nil
}

// RemainingCapacity returns how much of the asset may still be minted before its cap.
func (k Keeper) RemainingCapacity(ctx context.Context, asset types.Asset) (sdkmath.Int, error) {
	total, err := k.GetTotalDistributed(ctx, asset)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return asset.Cap().Sub(total), nil
}

// commit persists the outcome of a fully disbursed cycle.
func (k Keeper) commit(ctx context.Context, newTotalA, newTotalB sdkmath.Int, height uint64) error {
	if err := k.TotalDistributedA.Set(ctx, newTotalA); err != nil {
		return errorsmod.Wrap(err, "failed to store asset A total")
	}
	if err := k.TotalDistributedB.Set(ctx, newTotalB); err != nil {
		return errorsmod.Wrap(err, "failed to store asset B total")
	}
	return k.LastDistributionHeight.Set(ctx, height)
}

// intervalElapsed is written so that last + interval cannot overflow.
func intervalElapsed(last, current uint64) bool {
	return current >= last && current-last >= types.DistributionInterval
}
