package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

const (
	// DistributionInterval is the minimum number of heights between two distributions
	// (24 hours at a 1.5s block time).
	DistributionInterval uint64 = 57_600

	// AssetDecimals is the number of decimals of both reward assets.
	AssetDecimals = 18
)

var (
	// CapAssetA is the cumulative amount of asset A the module may ever mint.
	CapAssetA = sdkmath.NewIntWithDecimal(1_500_000, AssetDecimals)
	// CapAssetB is the cumulative amount of asset B the module may ever mint.
	CapAssetB = sdkmath.NewIntWithDecimal(750_000, AssetDecimals)

	// MaxUint128 bounds every persisted amount and every snapshot balance.
	MaxUint128 = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))
)

// Asset identifies one of the two reward assets.
type Asset int

const (
	// AssetA is the first reward asset.
	AssetA Asset = iota
	// AssetB is the second reward asset.
	AssetB
)

// Assets returns both reward assets in disbursement order.
func Assets() []Asset {
	return []Asset{AssetA, AssetB}
}

func (a Asset) String() string {
	switch a {
	case AssetA:
		return "asset_a"
	case AssetB:
		return "asset_b"
	default:
		return "unknown"
	}
}

// Cap returns the cumulative supply cap of the asset.
func (a Asset) Cap() sdkmath.Int {
	if a == AssetB {
		return CapAssetB
	}
	return CapAssetA
}

// IsUint128 reports whether v fits an unsigned 128-bit integer.
func IsUint128(v sdkmath.Int) bool {
	return !v.IsNil() && !v.IsNegative() && v.LTE(MaxUint128)
}
