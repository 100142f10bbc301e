package keeper_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/testutil/simapp"
	"github.com/tokenize-x/liquiddist/x/liquiddist/keeper"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func TestKeeper_Genesis(t *testing.T) {
	testCases := []struct {
		name    string
		genesis types.GenesisState
	}{
		{
			name:    "default",
			genesis: *types.DefaultGenesisState(),
		},
		{
			name: "initialized",
			genesis: types.GenesisState{
				Config: types.Config{
					AssetA:        denomA,
					AssetB:        denomB,
					StakingSource: snapshotSourceID,
				},
				TriggerPolicy:          types.TriggerPolicy{Permissionless: false, AutoDistribute: true},
				TotalDistributedA:      e18(1_000),
				TotalDistributedB:      e18(500),
				LastDistributionHeight: 172_800,
				DistributionsHalted:    true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			app := simapp.New(simapp.WithKeeperOptions(keeper.WithStakingSource(snapshotSourceID, &snapshotSource{})))
			ctx := app.NewContext(1)

			requireT.NoError(app.Keeper.InitGenesis(ctx, tc.genesis))
			exported, err := app.Keeper.ExportGenesis(ctx)
			requireT.NoError(err)
			requireT.Empty(cmp.Diff(tc.genesis, *exported, intComparer))
		})
	}
}

func TestKeeper_InitGenesis_Invalid(t *testing.T) {
	requireT := require.New(t)
	app := simapp.New(simapp.WithKeeperOptions(keeper.WithStakingSource(snapshotSourceID, &snapshotSource{})))
	ctx := app.NewContext(1)

	genesis := types.DefaultGenesisState()
	genesis.Config = types.Config{AssetA: denomA, AssetB: denomB, StakingSource: snapshotSourceID}
	genesis.TotalDistributedA = types.CapAssetA.Add(e18(1))
	requireT.ErrorIs(app.Keeper.InitGenesis(ctx, *genesis), types.ErrInvalidConfig)
}
