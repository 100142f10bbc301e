package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name.
	ModuleName = "liquiddist"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName

	// NativeStakingSource is the staking source identifier resolving to the chain's x/staking module.
	NativeStakingSource = "staking"
)

// KVStore keys.
var (
	AssetAKey                 = collections.NewPrefix(0)
	AssetBKey                 = collections.NewPrefix(1)
	StakingSourceKey          = collections.NewPrefix(2)
	TotalDistributedAKey      = collections.NewPrefix(3)
	TotalDistributedBKey      = collections.NewPrefix(4)
	LastDistributionHeightKey = collections.NewPrefix(5)
	PermissionlessKey         = collections.NewPrefix(6)
	AutoDistributeKey         = collections.NewPrefix(7)
	DistributionsHaltedKey    = collections.NewPrefix(8)
)
