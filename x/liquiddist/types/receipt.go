package types

import sdkmath "cosmossdk.io/math"

// DistributionReceipt records a committed distribution cycle.
type DistributionReceipt struct {
	Height      uint64
	PoolA       sdkmath.Int
	PoolB       sdkmath.Int
	StakersPaid uint64

	// DistributedA and DistributedB are the amounts actually minted. They are lower than the
	// pools when rewards are truncated or part of the stake belongs to no listed staker.
	DistributedA sdkmath.Int
	DistributedB sdkmath.Int
}

// Pool returns the pool of the asset.
func (r DistributionReceipt) Pool(asset Asset) sdkmath.Int {
	if asset == AssetB {
		return r.PoolB
	}
	return r.PoolA
}

// Distributed returns the minted amount of the asset.
func (r DistributionReceipt) Distributed(asset Asset) sdkmath.Int {
	if asset == AssetB {
		return r.DistributedB
	}
	return r.DistributedA
}

// Residual returns the part of the pool that was counted against the cap but not minted.
func (r DistributionReceipt) Residual(asset Asset) sdkmath.Int {
	return r.Pool(asset).Sub(r.Distributed(asset))
}
