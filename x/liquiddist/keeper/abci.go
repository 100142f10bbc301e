package keeper

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// ProcessAutoDistribution runs a cycle from EndBlock when auto distribution is enabled and the
// interval gate is open. The cycle executes in a cached context so a failed cycle discards all
// of its mints. Any failure other than an empty stake halts distributions until governance
// resumes them.
func (k Keeper) ProcessAutoDistribution(ctx context.Context) error {
	initialized, err := k.IsInitialized(ctx)
	if err != nil || !initialized {
		return err
	}

	policy, err := k.GetTriggerPolicy(ctx)
	if err != nil {
		return err
	}
	if !policy.AutoDistribute {
		return nil
	}

	halted, err := k.IsHalted(ctx)
	if err != nil || halted {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	height := uint64(sdkCtx.BlockHeight())
	due, err := k.IsDistributionDue(ctx, height)
	if err != nil || !due {
		return err
	}

	cacheCtx, writeCache := sdkCtx.CacheContext()
	if _, err := k.Distribute(cacheCtx, k.authority, height); err != nil { //nolint:contextcheck // this is correct context passing
		if errors.Is(err, types.ErrNoStakeToDistribute) {
			sdkCtx.Logger().Debug("no stake to distribute, skipping", "module", types.ModuleName, "height", height)
			return nil
		}
		return k.HaltDistributions(ctx, err)
	}

	writeCache()
	return nil
}
