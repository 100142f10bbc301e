package keeper

import (
	"context"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

// InitGenesis initializes the module state from genesis.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}

	if err := k.setTriggerPolicy(ctx, genState.TriggerPolicy); err != nil {
		return err
	}
	if err := k.DistributionsHalted.Set(ctx, genState.DistributionsHalted); err != nil {
		return err
	}

	if genState.Config.IsEmpty() {
		return nil
	}
	if err := k.Initialize(ctx, genState.Config); err != nil {
		return err
	}
	return k.commit(ctx, genState.TotalDistributedA, genState.TotalDistributedB, genState.LastDistributionHeight)
}

// ExportGenesis returns the module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesisState()

	policy, err := k.GetTriggerPolicy(ctx)
	if err != nil {
		return nil, err
	}
	genesis.TriggerPolicy = policy

	halted, err := k.IsHalted(ctx)
	if err != nil {
		return nil, err
	}
	genesis.DistributionsHalted = halted

	initialized, err := k.IsInitialized(ctx)
	if err != nil {
		return nil, err
	}
	if !initialized {
		return genesis, nil
	}

	if genesis.Config, err = k.GetConfig(ctx); err != nil {
		return nil, err
	}
	if genesis.TotalDistributedA, err = k.GetTotalDistributedA(ctx); err != nil {
		return nil, err
	}
	if genesis.TotalDistributedB, err = k.GetTotalDistributedB(ctx); err != nil {
		return nil, err
	}
	if genesis.LastDistributionHeight, err = k.GetLastDistributionHeight(ctx); err != nil {
		return nil, err
	}
	return genesis, nil
}
