package keeper

import (
	"context"
	"errors"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/shopspring/decimal"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// Distribute runs one all-or-nothing distribution cycle at currentHeight on behalf of caller.
//
// Every gate (trigger policy, interval, zero stake, snapshot consistency, caps) is checked
// before the first mint, so a rejected cycle leaves no trace. Once disbursing, a mint error
// aborts the cycle without committing counters; mints already issued for earlier stakers are
// not reversed here and are left to the surrounding state transition.
func (k Keeper) Distribute(ctx context.Context, caller string, currentHeight uint64) (types.DistributionReceipt, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "distribute")

	receipt, err := k.distribute(ctx, caller, currentHeight)
	if err != nil {
		telemetry.IncrCounterWithLabels(
			[]string{types.ModuleName, "distribution", "rejected"},
			1,
			[]metrics.Label{telemetry.NewLabel("reason", rejectionReason(err))},
		)
		return types.DistributionReceipt{}, err
	}

	telemetry.IncrCounter(1, types.ModuleName, "distribution", "committed")
	for _, asset := range types.Assets() {
		telemetry.SetGaugeWithLabels(
			[]string{types.ModuleName, "minted"},
			float32(decimal.NewFromBigInt(receipt.Distributed(asset).BigInt(), -types.AssetDecimals).InexactFloat64()),
			[]metrics.Label{telemetry.NewLabel("asset", asset.String())},
		)
	}
	return receipt, nil
}

func (k Keeper) distribute(ctx context.Context, caller string, currentHeight uint64) (types.DistributionReceipt, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return types.DistributionReceipt{}, err
	}
	if err := k.authorizeTrigger(ctx, caller); err != nil {
		return types.DistributionReceipt{}, err
	}
	halted, err := k.IsHalted(ctx)
	if err != nil {
		return types.DistributionReceipt{}, err
	}
	if halted {
		return types.DistributionReceipt{}, types.ErrDistributionsHalted
	}

	// interval gate
	last, err := k.GetLastDistributionHeight(ctx)
	if err != nil {
		return types.DistributionReceipt{}, err
	}
	if !intervalElapsed(last, currentHeight) {
		return types.DistributionReceipt{}, errorsmod.Wrapf(
			types.ErrIntervalNotElapsed,
			"current height %d, last distribution %d, interval %d", currentHeight, last, types.DistributionInterval,
		)
	}

	snapshot, err := k.loadSnapshot(ctx, cfg.StakingSource)
	if err != nil {
		return types.DistributionReceipt{}, err
	}

	// Each asset pool mirrors the current total stake 1:1.
	poolA := snapshot.TotalStaked
	poolB := snapshot.TotalStaked

	newTotalA, err := k.checkCap(ctx, types.AssetA, poolA)
	if err != nil {
		return types.DistributionReceipt{}, err
	}
	newTotalB, err := k.checkCap(ctx, types.AssetB, poolB)
	if err != nil {
		return types.DistributionReceipt{}, err
	}

	minterA, err := k.resolveMinter(cfg.AssetA)
	if err != nil {
		return types.DistributionReceipt{}, err
	}
	minterB, err := k.resolveMinter(cfg.AssetB)
	if err != nil {
		return types.DistributionReceipt{}, err
	}

	receipt := types.DistributionReceipt{
		Height:       currentHeight,
		PoolA:        poolA,
		PoolB:        poolB,
		DistributedA: sdkmath.ZeroInt(),
		DistributedB: sdkmath.ZeroInt(),
	}
	for _, sb := range snapshot.Stakers {
		// balance and pool are both bounded by 2^128, the 256-bit Int holds the product.
		rewardA := sb.Balance.Mul(poolA).Quo(snapshot.TotalStaked)
		rewardB := sb.Balance.Mul(poolB).Quo(snapshot.TotalStaked)

		if err := minterA.Mint(ctx, sb.Staker, rewardA); err != nil {
			return types.DistributionReceipt{}, k.mintFailure(sb.Staker, types.AssetA, err)
		}
		if err := minterB.Mint(ctx, sb.Staker, rewardB); err != nil {
			return types.DistributionReceipt{}, k.mintFailure(sb.Staker, types.AssetB, err)
		}

		receipt.DistributedA = receipt.DistributedA.Add(rewardA)
		receipt.DistributedB = receipt.DistributedB.Add(rewardB)
		receipt.StakersPaid++

		sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeReward,
			sdk.NewAttribute(types.AttributeKeyStaker, k.addressString(sb.Staker)),
			sdk.NewAttribute(types.AttributeKeyRewardA, rewardA.String()),
			sdk.NewAttribute(types.AttributeKeyRewardB, rewardB.String()),
		))
	}

	if err := k.commit(ctx, newTotalA, newTotalB, currentHeight); err != nil {
		return types.DistributionReceipt{}, err
	}

	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDistribution,
		sdk.NewAttribute(sdk.AttributeKeyAction, types.AttributeValueActionName),
		sdk.NewAttribute(types.AttributeKeyHeight, strconv.FormatUint(currentHeight, 10)),
		sdk.NewAttribute(types.AttributeKeyPoolA, poolA.String()),
		sdk.NewAttribute(types.AttributeKeyPoolB, poolB.String()),
		sdk.NewAttribute(types.AttributeKeyStakersPaid, strconv.FormatUint(receipt.StakersPaid, 10)),
		sdk.NewAttribute(types.AttributeKeyResidualA, receipt.Residual(types.AssetA).String()),
		sdk.NewAttribute(types.AttributeKeyResidualB, receipt.Residual(types.AssetB).String()),
	))

	sdkCtx.Logger().Info("liquid rewards distributed",
		"module", types.ModuleName,
		"height", currentHeight,
		"pool_a", poolA.String(),
		"pool_b", poolB.String(),
		"stakers", receipt.StakersPaid,
		"residual_a", receipt.Residual(types.AssetA).String(),
		"residual_b", receipt.Residual(types.AssetB).String())

	return receipt, nil
}

// loadSnapshot queries the staking source and rejects degenerate or inconsistent snapshots.
func (k Keeper) loadSnapshot(ctx context.Context, sourceID string) (types.Snapshot, error) {
	source, err := k.resolveStakingSource(sourceID)
	if err != nil {
		return types.Snapshot{}, err
	}

	totalStaked, err := source.TotalStaked(ctx)
	if err != nil {
		return types.Snapshot{}, errorsmod.Wrap(err, "failed to query total staked")
	}
	if totalStaked.IsNil() || totalStaked.IsZero() {
		return types.Snapshot{}, types.ErrNoStakeToDistribute
	}

	stakers, err := source.Stakers(ctx)
	if err != nil {
		return types.Snapshot{}, errorsmod.Wrap(err, "failed to query stakers")
	}

	snapshot := types.Snapshot{TotalStaked: totalStaked, Stakers: stakers}
	if err := snapshot.Validate(); err != nil {
		return types.Snapshot{}, err
	}
	return snapshot, nil
}

// checkCap returns the cumulative total after adding pool, or an error if it crosses the cap.
func (k Keeper) checkCap(ctx context.Context, asset types.Asset, pool sdkmath.Int) (sdkmath.Int, error) {
	total, err := k.GetTotalDistributed(ctx, asset)
	if err != nil {
		return sdkmath.Int{}, err
	}
	newTotal := total.Add(pool)
	if newTotal.GT(asset.Cap()) {
		return sdkmath.Int{}, &types.CapExceededError{
			Asset:    asset,
			Total:    total.String(),
			Pool:     pool.String(),
			NewTotal: newTotal.String(),
			Cap:      asset.Cap().String(),
		}
	}
	return newTotal, nil
}

func (k Keeper) mintFailure(staker sdk.AccAddress, asset types.Asset, cause error) error {
	return &types.MintFailureError{
		Staker: k.addressString(staker),
		Asset:  asset,
		Cause:  cause,
	}
}

func (k Keeper) addressString(addr sdk.AccAddress) string {
	s, err := k.addressCodec.BytesToString(addr)
	if err != nil {
		return addr.String()
	}
	return s
}

func rejectionReason(err error) string {
	for _, known := range []*errorsmod.Error{
		types.ErrIntervalNotElapsed,
		types.ErrNoStakeToDistribute,
		types.ErrCapExceeded,
		types.ErrMintFailure,
		types.ErrInvalidSnapshot,
		types.ErrUnauthorizedTrigger,
		types.ErrDistributionsHalted,
		types.ErrNotInitialized,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "other"
}
