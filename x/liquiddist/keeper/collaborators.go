package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// resolveStakingSource looks up the staking source by identifier: registered sources first,
// then the native staking module, then a CosmWasm staking contract.
func (k Keeper) resolveStakingSource(id string) (types.StakingSource, error) {
	if source, ok := k.stakingSources[id]; ok {
		return source, nil
	}

	if id == types.NativeStakingSource {
		if k.stakingKeeper == nil {
			return nil, errorsmod.Wrap(types.ErrUnknownCollaborator, "native staking keeper is not wired")
		}
		return newNativeStakingSource(k.stakingKeeper, k.addressCodec), nil
	}

	contract, err := k.addressCodec.StringToBytes(id)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrUnknownCollaborator, "staking source %s", id)
	}
	if k.wasmKeeper == nil {
		return nil, errorsmod.Wrapf(types.ErrUnknownCollaborator, "staking contract %s: wasm keeper is not wired", id)
	}
	return newContractStakingSource(k.wasmKeeper, k.addressCodec, contract), nil
}

// resolveMinter looks up the minter of an asset: registered minters first, then a CW20
// contract when the identifier is an address, otherwise a bank denom minted by the module.
func (k Keeper) resolveMinter(id string) (types.Minter, error) {
	if minter, ok := k.minters[id]; ok {
		return minter, nil
	}

	if contract, err := k.addressCodec.StringToBytes(id); err == nil {
		if k.wasmKeeper == nil {
			return nil, errorsmod.Wrapf(types.ErrUnknownCollaborator, "cw20 contract %s: wasm keeper is not wired", id)
		}
		return newCW20Minter(k.wasmKeeper, contract, k.moduleAddress(), k.addressCodec), nil
	}

	if err := sdk.ValidateDenom(id); err != nil {
		return nil, errorsmod.Wrapf(types.ErrUnknownCollaborator, "asset %s", id)
	}
	if k.bankKeeper == nil {
		return nil, errorsmod.Wrapf(types.ErrUnknownCollaborator, "denom %s: bank keeper is not wired", id)
	}
	return newBankMinter(k.bankKeeper, id), nil
}

func (k Keeper) validateCollaborators(cfg types.Config) error {
	if _, err := k.resolveStakingSource(cfg.StakingSource); err != nil {
		return err
	}
	for _, asset := range types.Assets() {
		if _, err := k.resolveMinter(cfg.AssetID(asset)); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) moduleAddress() sdk.AccAddress {
	if k.accountKeeper == nil {
		return nil
	}
	return k.accountKeeper.GetModuleAddress(types.ModuleName)
}
