package keeper_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/testutil/simapp"
	"github.com/tokenize-x/liquiddist/x/liquiddist/keeper"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func TestKeeper_CW20Minter(t *testing.T) {
	requireT := require.New(t)

	wasmKeeper := simapp.NewWasmKeeper()
	cw20 := authtypes.NewModuleAddress("cw20-token")
	source := &snapshotSource{snapshot: snapshotOf(sdkmath.NewInt(10), sdkmath.ZeroInt(), sdkmath.NewInt(10))}

	app := simapp.New(
		simapp.WithWasmKeeper(wasmKeeper),
		simapp.WithKeeperOptions(keeper.WithStakingSource(snapshotSourceID, source)),
	)
	ctx := app.NewContext(1)
	requireT.NoError(app.Keeper.Initialize(ctx, types.Config{
		AssetA:        cw20.String(),
		AssetB:        denomB,
		StakingSource: snapshotSourceID,
	}))

	_, err := app.Keeper.Distribute(ctx, app.Authority, types.DistributionInterval)
	requireT.NoError(err)

	// the zero reward of the first staker is not sent to the contract
	requireT.Len(wasmKeeper.Executed, 1)
	executed := wasmKeeper.Executed[0]
	requireT.Equal(cw20, executed.Contract)
	requireT.Equal(authtypes.NewModuleAddress(types.ModuleName), executed.Caller)

	var msg struct {
		Mint struct {
			Recipient string `json:"recipient"`
			Amount    string `json:"amount"`
		} `json:"mint"`
	}
	requireT.NoError(json.Unmarshal(executed.Msg, &msg))
	requireT.Equal(stakerAddr(1).String(), msg.Mint.Recipient)
	requireT.Equal("10", msg.Mint.Amount)

	balance, err := app.Bank.Balance(ctx, stakerAddr(1), denomB)
	requireT.NoError(err)
	requireT.Equal("10", balance.String())
}

func TestKeeper_CW20Minter_Failure(t *testing.T) {
	requireT := require.New(t)

	wasmKeeper := simapp.NewWasmKeeper()
	wasmKeeper.FailExecuteAfter = 0
	cw20 := authtypes.NewModuleAddress("cw20-token")
	source := &snapshotSource{snapshot: snapshotOf(sdkmath.NewInt(10), sdkmath.NewInt(10))}

	app := simapp.New(
		simapp.WithWasmKeeper(wasmKeeper),
		simapp.WithKeeperOptions(keeper.WithStakingSource(snapshotSourceID, source)),
	)
	ctx := app.NewContext(1)
	requireT.NoError(app.Keeper.Initialize(ctx, types.Config{
		AssetA:        denomA,
		AssetB:        cw20.String(),
		StakingSource: snapshotSourceID,
	}))

	_, err := app.Keeper.Distribute(ctx, app.Authority, types.DistributionInterval)
	requireT.ErrorIs(err, types.ErrMintFailure)
	requireT.ErrorIs(err, simapp.ErrInjected)

	// asset A was already minted to the staker
	balance, err := app.Bank.Balance(ctx, stakerAddr(0), denomA)
	requireT.NoError(err)
	requireT.Equal("10", balance.String())

	last, err := app.Keeper.GetLastDistributionHeight(ctx)
	requireT.NoError(err)
	requireT.Zero(last)
}

type recordingMinter struct {
	minted map[string]sdkmath.Int
}

func (m *recordingMinter) Mint(_ context.Context, recipient sdk.AccAddress, amount sdkmath.Int) error {
	m.minted[recipient.String()] = amount
	return nil
}

func TestKeeper_RegisteredMinter(t *testing.T) {
	requireT := require.New(t)

	minter := &recordingMinter{minted: map[string]sdkmath.Int{}}
	source := &snapshotSource{snapshot: snapshotOf(sdkmath.NewInt(9), sdkmath.NewInt(4), sdkmath.NewInt(5))}
	app := simapp.New(simapp.WithKeeperOptions(
		keeper.WithStakingSource(snapshotSourceID, source),
		keeper.WithMinter("points", minter),
	))
	ctx := app.NewContext(1)
	requireT.NoError(app.Keeper.Initialize(ctx, types.Config{
		AssetA:        denomA,
		AssetB:        "points",
		StakingSource: snapshotSourceID,
	}))

	_, err := app.Keeper.Distribute(ctx, app.Authority, types.DistributionInterval)
	requireT.NoError(err)
	requireT.Equal("4", minter.minted[stakerAddr(0).String()].String())
	requireT.Equal("5", minter.minted[stakerAddr(1).String()].String())

	supplyB, err := app.Bank.SupplyOf(ctx, "points")
	requireT.NoError(err)
	requireT.True(supplyB.IsZero())
}
