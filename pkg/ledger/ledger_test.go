package ledger_test

import (
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/liquiddist/pkg/ledger"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

func newBank(t *testing.T) (sdk.Context, ledger.Bank) {
	t.Helper()

	key := storetypes.NewKVStoreKey("bank")
	cms, err := ledger.NewMultiStore(dbm.NewMemDB(), log.NewNopLogger(), key)
	require.NoError(t, err)
	return ledger.NewContext(cms, 1, log.NewNopLogger()), ledger.NewBank(runtime.NewKVStoreService(key))
}

func TestBank_MintAndSend(t *testing.T) {
	requireT := require.New(t)
	ctx, bank := newBank(t)

	recipient := sdk.AccAddress("recipient___________")
	coins := sdk.NewCoins(sdk.NewInt64Coin("uliqa", 100))

	requireT.NoError(bank.MintCoins(ctx, types.ModuleName, coins))
	requireT.NoError(bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(
		sdk.NewInt64Coin("uliqa", 60),
	)))

	balance, err := bank.Balance(ctx, recipient, "uliqa")
	requireT.NoError(err)
	requireT.Equal("60", balance.String())

	moduleBalance, err := bank.Balance(ctx, authtypes.NewModuleAddress(types.ModuleName), "uliqa")
	requireT.NoError(err)
	requireT.Equal("40", moduleBalance.String())

	supply, err := bank.SupplyOf(ctx, "uliqa")
	requireT.NoError(err)
	requireT.Equal("100", supply.String())

	all, err := bank.AllBalances(ctx, recipient)
	requireT.NoError(err)
	requireT.Equal("60uliqa", all.String())
}

func TestBank_InsufficientFunds(t *testing.T) {
	requireT := require.New(t)
	ctx, bank := newBank(t)

	err := bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sdk.AccAddress("recipient___________"),
		sdk.NewCoins(sdk.NewInt64Coin("uliqa", 1)))
	requireT.ErrorIs(err, sdkerrors.ErrInsufficientFunds)
}

func TestModuleAccounts(t *testing.T) {
	require.Equal(t, authtypes.NewModuleAddress(types.ModuleName), ledger.ModuleAccounts{}.GetModuleAddress(types.ModuleName))
}

func TestParseSnapshot(t *testing.T) {
	codec := addresscodec.NewBech32Codec("cosmos")
	alice := sdk.AccAddress("alice_______________")
	bob := sdk.AccAddress("bob_________________")
	aliceStr, err := codec.BytesToString(alice)
	require.NoError(t, err)
	bobStr, err := codec.BytesToString(bob)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		yaml        string
		expectedErr error
		expected    types.Snapshot
	}{
		{
			name: "valid",
			yaml: "total_staked: \"1000000000000000000000000\"\nstakers:\n" +
				"  - address: " + bobStr + "\n    balance: \"600000000000000000000000\"\n" +
				"  - address: " + aliceStr + "\n    balance: \"400000000000000000000000\"\n",
			expected: types.Snapshot{
				TotalStaked: sdkmath.NewIntWithDecimal(1_000_000, 18),
				Stakers: []types.StakerBalance{
					{Staker: bob, Balance: sdkmath.NewIntWithDecimal(600_000, 18)},
					{Staker: alice, Balance: sdkmath.NewIntWithDecimal(400_000, 18)},
				},
			},
		},
		{
			name:        "bad_total",
			yaml:        "total_staked: \"abc\"\n",
			expectedErr: types.ErrInvalidSnapshot,
		},
		{
			name:        "bad_address",
			yaml:        "total_staked: \"1\"\nstakers:\n  - address: nope\n    balance: \"1\"\n",
			expectedErr: types.ErrInvalidSnapshot,
		},
		{
			name:        "bad_balance",
			yaml:        "total_staked: \"1\"\nstakers:\n  - address: " + aliceStr + "\n    balance: \"-\"\n",
			expectedErr: types.ErrInvalidSnapshot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireT := require.New(t)
			source, err := ledger.ParseSnapshot([]byte(tc.yaml), codec)
			if tc.expectedErr != nil {
				requireT.ErrorIs(err, tc.expectedErr)
				return
			}
			requireT.NoError(err)

			total, err := source.TotalStaked(t.Context())
			requireT.NoError(err)
			requireT.Equal(tc.expected.TotalStaked.String(), total.String())

			stakers, err := source.Stakers(t.Context())
			requireT.NoError(err)
			requireT.Len(stakers, len(tc.expected.Stakers))
			for i, expected := range tc.expected.Stakers {
				requireT.Equal(expected.Staker, stakers[i].Staker)
				requireT.Equal(expected.Balance.String(), stakers[i].Balance.String())
			}
		})
	}
}

func TestNewMultiStore_CommitsSeparateStores(t *testing.T) {
	requireT := require.New(t)

	db := dbm.NewMemDB()
	keyA := storetypes.NewKVStoreKey("a")
	keyB := storetypes.NewKVStoreKey("b")
	cms, err := ledger.NewMultiStore(db, log.NewNopLogger(), keyA, keyB)
	requireT.NoError(err)

	cms.GetKVStore(keyA).Set([]byte("key"), []byte("value-a"))
	cms.GetKVStore(keyB).Set([]byte("key"), []byte("value-b"))
	requireT.Equal(int64(1), cms.Commit().Version)

	cms.GetKVStore(keyA).Set([]byte("key"), []byte("value-a2"))
	requireT.Equal(int64(2), cms.Commit().Version)

	reloaded, err := ledger.NewMultiStore(db, log.NewNopLogger(), keyA, keyB)
	requireT.NoError(err)
	requireT.Equal(int64(2), reloaded.LastCommitID().Version)
	requireT.Equal([]byte("value-a2"), reloaded.GetKVStore(keyA).Get([]byte("key")))
	requireT.Equal([]byte("value-b"), reloaded.GetKVStore(keyB).Get([]byte("key")))
}
