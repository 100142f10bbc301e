package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/pkg/ledger"
	"github.com/tokenize-x/liquiddist/testutil/simapp"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func enableAutoDistribution(t *testing.T, env testEnv) {
	t.Helper()
	require.NoError(t, env.app.Keeper.SetTriggerPolicy(env.ctx, env.app.Authority, types.TriggerPolicy{
		Permissionless: true,
		AutoDistribute: true,
	}))
}

func TestKeeper_ProcessAutoDistribution(t *testing.T) {
	requireT := require.New(t)
	env := newTestEnv(t, snapshotOf(e18(10), e18(4), e18(6)))

	// disabled by default
	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))
	requireT.Zero(env.counters(t).lastHeight)

	enableAutoDistribution(t, env)

	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval - 1))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))
	requireT.Zero(env.counters(t).lastHeight)

	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))
	requireT.Equal(types.DistributionInterval, env.counters(t).lastHeight)
	requireT.Equal(e18(4).String(), env.balance(t, stakerAddr(0), denomA).String())

	// the next block does nothing
	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval + 1))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))
	requireT.Equal(e18(4).String(), env.balance(t, stakerAddr(0), denomA).String())
}

func TestKeeper_ProcessAutoDistribution_NoStake(t *testing.T) {
	requireT := require.New(t)
	env := newTestEnv(t, snapshotOf(sdkmath.ZeroInt()))
	enableAutoDistribution(t, env)

	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))

	halted, err := env.app.Keeper.IsHalted(env.ctx)
	requireT.NoError(err)
	requireT.False(halted)
}

func TestKeeper_ProcessAutoDistribution_FailureRollsBackAndHalts(t *testing.T) {
	requireT := require.New(t)
	env := newTestEnv(t, snapshotOf(e18(10), e18(4), e18(6)),
		simapp.WithBankWrapper(func(bank ledger.Bank) types.BankKeeper {
			return &simapp.FailingBank{BankKeeper: bank, FailAfter: 3}
		}),
	)
	enableAutoDistribution(t, env)

	env.ctx = env.ctx.WithBlockHeight(int64(types.DistributionInterval))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))

	halted, err := env.app.Keeper.IsHalted(env.ctx)
	requireT.NoError(err)
	requireT.True(halted)

	// the first staker was paid inside the discarded cache
	requireT.True(env.balance(t, stakerAddr(0), denomA).IsZero())
	requireT.True(env.balance(t, stakerAddr(0), denomB).IsZero())
	requireT.True(env.supply(t, denomA).IsZero())
	requireT.Zero(env.counters(t).lastHeight)

	// halted chains skip further cycles until governance resumes them
	env.ctx = env.ctx.WithBlockHeight(int64(2 * types.DistributionInterval))
	requireT.NoError(env.app.Keeper.ProcessAutoDistribution(env.ctx))
	requireT.Zero(env.counters(t).lastHeight)
}

func TestKeeper_ProcessAutoDistribution_NotInitialized(t *testing.T) {
	app := simapp.New()
	ctx := app.NewContext(int64(types.DistributionInterval))
	require.NoError(t, app.Keeper.ProcessAutoDistribution(ctx))
}
