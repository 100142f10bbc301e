package keeper

import (
	"context"
	"encoding/json"

	addresscodec "cosmossdk.io/core/address"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/tokenize-x/liquiddist/pkg/deterministicmap"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// contractStakersPageLimit is the page size used when listing stakers of a staking contract.
const contractStakersPageLimit = 30

// nativeStakingSource reads stake from x/staking. The total is the sum of all validator
// tokens; each delegator's balance is the truncated token value of all their delegations.
type nativeStakingSource struct {
	stakingKeeper types.StakingKeeper
	addressCodec  addresscodec.Codec
}

func newNativeStakingSource(stakingKeeper types.StakingKeeper, addressCodec addresscodec.Codec) nativeStakingSource {
	return nativeStakingSource{stakingKeeper: stakingKeeper, addressCodec: addressCodec}
}

func (s nativeStakingSource) TotalStaked(ctx context.Context) (sdkmath.Int, error) {
	validators, err := s.stakingKeeper.GetAllValidators(ctx)
	if err != nil {
		return sdkmath.Int{}, err
	}
	total := sdkmath.ZeroInt()
	for _, val := range validators {
		total = total.Add(val.Tokens)
	}
	return total, nil
}

func (s nativeStakingSource) Stakers(ctx context.Context) ([]types.StakerBalance, error) {
	validators, err := s.stakingKeeper.GetAllValidators(ctx)
	if err != nil {
		return nil, err
	}
	validatorByOperator := make(map[string]stakingtypes.Validator, len(validators))
	for _, val := range validators {
		validatorByOperator[val.GetOperator()] = val
	}

	delegations, err := s.stakingKeeper.GetAllDelegations(ctx)
	if err != nil {
		return nil, err
	}

	// keyed by the raw address bytes so the order does not depend on the bech32 prefix.
	balances := deterministicmap.New[string, sdkmath.Int]()
	for _, delegation := range delegations {
		val, found := validatorByOperator[delegation.ValidatorAddress]
		if !found {
			return nil, errorsmod.Wrapf(
				types.ErrInvalidSnapshot, "delegation to unknown validator %s", delegation.ValidatorAddress,
			)
		}
		delAddr, err := s.addressCodec.StringToBytes(delegation.DelegatorAddress)
		if err != nil {
			return nil, err
		}
		tokens := val.TokensFromShares(delegation.Shares).TruncateInt()
		balances.Upsert(string(delAddr), func(current sdkmath.Int, found bool) sdkmath.Int {
			if !found {
				return tokens
			}
			return current.Add(tokens)
		})
	}

	stakers := make([]types.StakerBalance, 0, balances.Len())
	err = balances.RangeErr(func(addr string, balance sdkmath.Int) error {
		if balance.IsZero() {
			return nil
		}
		stakers = append(stakers, types.StakerBalance{Staker: sdk.AccAddress(addr), Balance: balance})
		return nil
	})
	return stakers, err
}

type stakingContractQuery struct {
	TotalStaked *struct{}            `json:"total_staked,omitempty"`
	Stakers     *stakersContractPage `json:"stakers,omitempty"`
}

type stakersContractPage struct {
	StartAfter string `json:"start_after,omitempty"`
	Limit      uint32 `json:"limit"`
}

type totalStakedResponse struct {
	TotalStaked sdkmath.Int `json:"total_staked"`
}

type stakersResponse struct {
	Stakers []struct {
		Address string      `json:"address"`
		Balance sdkmath.Int `json:"balance"`
	} `json:"stakers"`
}

// contractStakingSource reads stake from a CosmWasm staking contract through smart queries.
type contractStakingSource struct {
	wasmKeeper   types.ContractQuerier
	addressCodec addresscodec.Codec
	contract     sdk.AccAddress
}

func newContractStakingSource(
	wasmKeeper types.ContractQuerier,
	addressCodec addresscodec.Codec,
	contract sdk.AccAddress,
) contractStakingSource {
	return contractStakingSource{wasmKeeper: wasmKeeper, addressCodec: addressCodec, contract: contract}
}

func (s contractStakingSource) TotalStaked(ctx context.Context) (sdkmath.Int, error) {
	var res totalStakedResponse
	if err := s.query(ctx, stakingContractQuery{TotalStaked: &struct{}{}}, &res); err != nil {
		return sdkmath.Int{}, err
	}
	if res.TotalStaked.IsNil() {
		return sdkmath.ZeroInt(), nil
	}
	return res.TotalStaked, nil
}

func (s contractStakingSource) Stakers(ctx context.Context) ([]types.StakerBalance, error) {
	var (
		stakers    []types.StakerBalance
		startAfter string
	)
	for {
		var res stakersResponse
		page := &stakersContractPage{StartAfter: startAfter, Limit: contractStakersPageLimit}
		if err := s.query(ctx, stakingContractQuery{Stakers: page}, &res); err != nil {
			return nil, err
		}
		for _, st := range res.Stakers {
			addr, err := s.addressCodec.StringToBytes(st.Address)
			if err != nil {
				return nil, errorsmod.Wrapf(types.ErrInvalidSnapshot, "staker %s: %s", st.Address, err)
			}
			if st.Balance.IsNil() {
				return nil, errorsmod.Wrapf(types.ErrInvalidSnapshot, "staker %s: missing balance", st.Address)
			}
			stakers = append(stakers, types.StakerBalance{Staker: addr, Balance: st.Balance})
		}
		if len(res.Stakers) < contractStakersPageLimit {
			return stakers, nil
		}
		last := res.Stakers[len(res.Stakers)-1].Address
		if last <= startAfter {
			return nil, errorsmod.Wrapf(types.ErrInvalidSnapshot, "staker page does not advance past %q", startAfter)
		}
		startAfter = last
	}
}

func (s contractStakingSource) query(ctx context.Context, req stakingContractQuery, res any) error {
	reqBz, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resBz, err := s.wasmKeeper.QuerySmart(ctx, s.contract, reqBz)
	if err != nil {
		return errorsmod.Wrap(err, "staking contract query failed")
	}
	raw := wasmtypes.RawContractMessage(resBz)
	if err := raw.ValidateBasic(); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidSnapshot, "staking contract response: %s", err)
	}
	if err := json.Unmarshal(resBz, res); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidSnapshot, "malformed staking contract response: %s", err)
	}
	return nil
}
