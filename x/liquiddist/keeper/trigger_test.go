package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func TestKeeper_TriggerPolicy(t *testing.T) {
	requireT := require.New(t)
	env := newTestEnv(t, snapshotOf(e18(100), e18(100)))
	caller := stakerAddr(7).String()

	policy, err := env.app.Keeper.GetTriggerPolicy(env.ctx)
	requireT.NoError(err)
	requireT.Equal(types.DefaultTriggerPolicy(), policy)

	restricted := types.TriggerPolicy{Permissionless: false}
	err = env.app.Keeper.SetTriggerPolicy(env.ctx, caller, restricted)
	requireT.ErrorIs(err, types.ErrInvalidAuthority)
	requireT.NoError(env.app.Keeper.SetTriggerPolicy(env.ctx, env.app.Authority, restricted))

	policy, err = env.app.Keeper.GetTriggerPolicy(env.ctx)
	requireT.NoError(err)
	requireT.Equal(restricted, policy)

	_, err = env.app.Keeper.Distribute(env.ctx, caller, types.DistributionInterval)
	requireT.ErrorIs(err, types.ErrUnauthorizedTrigger)
	requireT.Zero(env.counters(t).lastHeight)
	requireT.True(env.supply(t, denomA).IsZero())

	_, err = env.app.Keeper.Distribute(env.ctx, env.app.Authority, types.DistributionInterval)
	requireT.NoError(err)

	// permissionless lets anyone trigger
	requireT.NoError(env.app.Keeper.SetTriggerPolicy(env.ctx, env.app.Authority, types.DefaultTriggerPolicy()))
	_, err = env.app.Keeper.Distribute(env.ctx, caller, 2*types.DistributionInterval)
	requireT.NoError(err)
}

func TestKeeper_HaltAndResume(t *testing.T) {
	requireT := require.New(t)
	env := newTestEnv(t, snapshotOf(e18(100), e18(100)))

	halted, err := env.app.Keeper.IsHalted(env.ctx)
	requireT.NoError(err)
	requireT.False(halted)

	requireT.NoError(env.app.Keeper.HaltDistributions(env.ctx, types.ErrMintFailure))
	halted, err = env.app.Keeper.IsHalted(env.ctx)
	requireT.NoError(err)
	requireT.True(halted)

	_, err = env.distribute(types.DistributionInterval)
	requireT.ErrorIs(err, types.ErrDistributionsHalted)
	requireT.Zero(env.counters(t).lastHeight)

	requireT.ErrorIs(env.app.Keeper.ResumeDistributions(env.ctx, stakerAddr(1).String()), types.ErrInvalidAuthority)
	requireT.NoError(env.app.Keeper.ResumeDistributions(env.ctx, env.app.Authority))

	_, err = env.distribute(types.DistributionInterval)
	requireT.NoError(err)
}
