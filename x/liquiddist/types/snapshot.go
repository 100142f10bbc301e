package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/samber/lo"
)

// StakerBalance is one row of a staking snapshot.
type StakerBalance struct {
	Staker  sdk.AccAddress
	Balance sdkmath.Int
}

// Snapshot is the staking state read at the start of a distribution cycle.
// It is built fresh on every attempt and discarded afterwards.
type Snapshot struct {
	TotalStaked sdkmath.Int
	Stakers     []StakerBalance
}

// SumBalances returns the sum of all staker balances.
func (s Snapshot) SumBalances() sdkmath.Int {
	return lo.Reduce(s.Stakers, func(sum sdkmath.Int, sb StakerBalance, _ int) sdkmath.Int {
		return sum.Add(sb.Balance)
	}, sdkmath.ZeroInt())
}

// Validate checks that every amount fits 128 bits, that stakers are unique and
// that the balances do not sum above the reported total.
func (s Snapshot) Validate() error {
	if !IsUint128(s.TotalStaked) {
		return errorsmod.Wrapf(ErrInvalidSnapshot, "total staked %s is not a uint128", s.TotalStaked)
	}

	seen := make(map[string]struct{}, len(s.Stakers))
	for i, sb := range s.Stakers {
		if len(sb.Staker) == 0 {
			return errorsmod.Wrapf(ErrInvalidSnapshot, "staker %d: empty address", i)
		}
		if !IsUint128(sb.Balance) {
			return errorsmod.Wrapf(ErrInvalidSnapshot, "staker %d: balance %s is not a uint128", i, sb.Balance)
		}
		key := string(sb.Staker)
		if _, found := seen[key]; found {
			return errorsmod.Wrapf(ErrInvalidSnapshot, "staker %d: duplicate address %s", i, sb.Staker)
		}
		seen[key] = struct{}{}
	}

	if sum := s.SumBalances(); sum.GT(s.TotalStaked) {
		return errorsmod.Wrapf(ErrInvalidSnapshot, "sum of balances %s exceeds total staked %s", sum, s.TotalStaked)
	}

	return nil
}
