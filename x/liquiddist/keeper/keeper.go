package keeper

import (
	"cosmossdk.io/collections"
	addresscodec "cosmossdk.io/core/address"
	sdkstore "cosmossdk.io/core/store"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// Keeper of the module.
type Keeper struct {
	storeService sdkstore.KVStoreService
	authority    string

	// codec
	addressCodec addresscodec.Codec

	// keepers
	accountKeeper types.AccountKeeper
	bankKeeper    types.BankKeeper
	stakingKeeper types.StakingKeeper
	wasmKeeper    types.WasmKeeper

	// collaborators registered by identifier, looked up before the built-in adapters
	stakingSources map[string]types.StakingSource
	minters        map[string]types.Minter

	// collections
	Schema                 collections.Schema
	AssetA                 collections.Item[string]
	AssetB                 collections.Item[string]
	StakingSource          collections.Item[string]
	TotalDistributedA      collections.Item[sdkmath.Int]
	TotalDistributedB      collections.Item[sdkmath.Int]
	LastDistributionHeight collections.Item[uint64]
	Permissionless         collections.Item[bool]
	AutoDistribute         collections.Item[bool]
	DistributionsHalted    collections.Item[bool]
}

// Option customises the keeper.
type Option func(*Keeper)

// WithStakingSource registers a staking source under an identifier.
func WithStakingSource(id string, source types.StakingSource) Option {
	return func(k *Keeper) {
		k.stakingSources[id] = source
	}
}

// WithMinter registers a minter under an asset identifier.
func WithMinter(id string, minter types.Minter) Option {
	return func(k *Keeper) {
		k.minters[id] = minter
	}
}

// NewKeeper returns a new keeper object providing storage options required by the module.
// wasmKeeper and stakingKeeper may be nil when the chain does not provide them; identifiers
// resolving to them are then rejected.
func NewKeeper(
	storeService sdkstore.KVStoreService,
	authority string,
	addressCodec addresscodec.Codec,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	stakingKeeper types.StakingKeeper,
	wasmKeeper types.WasmKeeper,
	opts ...Option,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService:   storeService,
		authority:      authority,
		addressCodec:   addressCodec,
		accountKeeper:  accountKeeper,
		bankKeeper:     bankKeeper,
		stakingKeeper:  stakingKeeper,
		wasmKeeper:     wasmKeeper,
		stakingSources: make(map[string]types.StakingSource),
		minters:        make(map[string]types.Minter),

		AssetA: collections.NewItem(sb, types.AssetAKey, "asset_a", collections.StringValue),
		AssetB: collections.NewItem(sb, types.AssetBKey, "asset_b", collections.StringValue),
		StakingSource: collections.NewItem(
			sb,
			types.StakingSourceKey,
			"staking_source",
			collections.StringValue,
		),
		TotalDistributedA: collections.NewItem(
			sb,
			types.TotalDistributedAKey,
			"total_distributed_a",
			sdk.IntValue,
		),
		TotalDistributedB: collections.NewItem(
			sb,
			types.TotalDistributedBKey,
			"total_distributed_b",
			sdk.IntValue,
		),
		LastDistributionHeight: collections.NewItem(
			sb,
			types.LastDistributionHeightKey,
			"last_distribution_height",
			collections.Uint64Value,
		),
		Permissionless: collections.NewItem(sb, types.PermissionlessKey, "permissionless", collections.BoolValue),
		AutoDistribute: collections.NewItem(sb, types.AutoDistributeKey, "auto_distribute", collections.BoolValue),
		DistributionsHalted: collections.NewItem(
			sb,
			types.DistributionsHaltedKey,
			"distributions_halted",
			collections.BoolValue,
		),
	}

	for _, opt := range opts {
		opt(&k)
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the module authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}
