package types

import (
	context "context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// StakingSource is the read-only view over staked balances consumed by the engine.
type StakingSource interface {
	TotalStaked(ctx context.Context) (sdkmath.Int, error)
	// Stakers returns the stakers in a deterministic order.
	Stakers(ctx context.Context) ([]StakerBalance, error)
}

// Minter mints one asset to a recipient.
type Minter interface {
	Mint(ctx context.Context, recipient sdk.AccAddress, amount sdkmath.Int) error
}

// BankKeeper interface.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(
		ctx context.Context,
		senderModule string,
		recipientAddr sdk.AccAddress,
		amt sdk.Coins,
	) error
}

// StakingKeeper interface.
type StakingKeeper interface {
	GetAllValidators(ctx context.Context) ([]stakingtypes.Validator, error)
	GetAllDelegations(ctx context.Context) ([]stakingtypes.Delegation, error)
}

// AccountKeeper interface.
type AccountKeeper interface {
	GetModuleAddress(moduleName string) sdk.AccAddress
}

// ContractExecutor executes CosmWasm contract messages, as wasmd's PermissionedKeeper does.
type ContractExecutor interface {
	Execute(ctx sdk.Context, contractAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error)
}

// ContractQuerier runs CosmWasm smart queries.
type ContractQuerier interface {
	QuerySmart(ctx context.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error)
}

// WasmKeeper interface.
type WasmKeeper interface {
	ContractExecutor
	ContractQuerier
}
