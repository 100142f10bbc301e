package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Config holds the identifiers of the external collaborators. It is set once at
// initialization and never changes afterwards.
type Config struct {
	AssetA        string `json:"asset_a" yaml:"asset_a"`
	AssetB        string `json:"asset_b" yaml:"asset_b"`
	StakingSource string `json:"staking_source" yaml:"staking_source"`
}

// IsEmpty reports whether no identifier is set.
func (c Config) IsEmpty() bool {
	return c.AssetA == "" && c.AssetB == "" && c.StakingSource == ""
}

// AssetID returns the configured identifier of the asset.
func (c Config) AssetID(asset Asset) string {
	if asset == AssetB {
		return c.AssetB
	}
	return c.AssetA
}

// ValidateBasic checks that all identifiers are set and the assets are distinct.
// Resolution of identifiers to collaborators is done by the keeper.
func (c Config) ValidateBasic() error {
	if c.AssetA == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "asset A identifier cannot be empty")
	}
	if c.AssetB == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "asset B identifier cannot be empty")
	}
	if c.StakingSource == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "staking source identifier cannot be empty")
	}
	if c.AssetA == c.AssetB {
		return errorsmod.Wrapf(ErrInvalidConfig, "asset A and asset B must differ, both are %s", c.AssetA)
	}
	for _, id := range []string{c.AssetA, c.AssetB} {
		if IsContractIdentifier(id) {
			continue
		}
		if err := sdk.ValidateDenom(id); err != nil {
			return errorsmod.Wrapf(ErrInvalidConfig, "asset %s is neither a contract address nor a denom", id)
		}
	}
	return nil
}

// IsContractIdentifier reports whether the identifier is a bech32 account address.
func IsContractIdentifier(id string) bool {
	_, err := sdk.AccAddressFromBech32(id)
	return err == nil
}

// TriggerPolicy controls who may start a distribution cycle.
type TriggerPolicy struct {
	// Permissionless allows any caller to trigger Distribute. When false only the module authority may.
	Permissionless bool `json:"permissionless" yaml:"permissionless"`
	// AutoDistribute runs a cycle from EndBlock as soon as the interval gate opens.
	AutoDistribute bool `json:"auto_distribute" yaml:"auto_distribute"`
}

// DefaultTriggerPolicy returns the permissionless, manually triggered policy.
func DefaultTriggerPolicy() TriggerPolicy {
	return TriggerPolicy{
		Permissionless: true,
		AutoDistribute: false,
	}
}
