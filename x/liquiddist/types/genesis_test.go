package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func TestGenesisState_Validate(t *testing.T) {
	contract := sdk.AccAddress(make([]byte, 32)).String()
	validConfig := types.Config{
		AssetA:        "uliquidprysm",
		AssetB:        contract,
		StakingSource: types.NativeStakingSource,
	}

	testCases := []struct {
		name      string
		modify    func(*types.GenesisState)
		expectErr error
	}{
		{
			name:   "default",
			modify: func(*types.GenesisState) {},
		},
		{
			name: "configured with counters",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.TotalDistributedA = types.CapAssetA
				gs.TotalDistributedB = sdkmath.NewInt(10)
				gs.LastDistributionHeight = 57_600
			},
		},
		{
			name: "same asset twice",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.Config.AssetB = gs.Config.AssetA
			},
			expectErr: types.ErrInvalidConfig,
		},
		{
			name: "missing staking source",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.Config.StakingSource = ""
			},
			expectErr: types.ErrInvalidConfig,
		},
		{
			name: "malformed asset identifier",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.Config.AssetA = "1!bad"
			},
			expectErr: types.ErrInvalidConfig,
		},
		{
			name: "asset B over cap",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.TotalDistributedB = types.CapAssetB.AddRaw(1)
			},
			expectErr: types.ErrInvalidConfig,
		},
		{
			name: "negative total",
			modify: func(gs *types.GenesisState) {
				gs.Config = validConfig
				gs.TotalDistributedA = sdkmath.NewInt(-1)
			},
			expectErr: types.ErrInvalidConfig,
		},
		{
			name: "counters without config",
			modify: func(gs *types.GenesisState) {
				gs.LastDistributionHeight = 1
			},
			expectErr: types.ErrInvalidConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			gs := types.DefaultGenesisState()
			tc.modify(gs)
			err := gs.Validate()
			if tc.expectErr != nil {
				requireT.ErrorIs(err, tc.expectErr)
				return
			}
			requireT.NoError(err)
		})
	}
}
