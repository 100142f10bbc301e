package keeper

import (
	"context"
	"encoding/json"

	addresscodec "cosmossdk.io/core/address"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

var (
	_ types.Minter = bankMinter{}
	_ types.Minter = cw20Minter{}
)

// bankMinter mints a native denom to the module account and forwards it to the recipient.
type bankMinter struct {
	bankKeeper types.BankKeeper
	denom      string
}

func newBankMinter(bankKeeper types.BankKeeper, denom string) bankMinter {
	return bankMinter{bankKeeper: bankKeeper, denom: denom}
}

func (m bankMinter) Mint(ctx context.Context, recipient sdk.AccAddress, amount sdkmath.Int) error {
	if amount.IsZero() {
		return nil
	}
	coins := sdk.NewCoins(sdk.NewCoin(m.denom, amount))
	if err := m.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return err
	}
	return m.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins)
}

type cw20MintMsg struct {
	Mint cw20Mint `json:"mint"`
}

type cw20Mint struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// cw20Minter executes the CW20 mint message as the module account, which must be the token's minter.
type cw20Minter struct {
	wasmKeeper   types.ContractExecutor
	contract     sdk.AccAddress
	caller       sdk.AccAddress
	addressCodec addresscodec.Codec
}

func newCW20Minter(
	wasmKeeper types.ContractExecutor,
	contract, caller sdk.AccAddress,
	addressCodec addresscodec.Codec,
) cw20Minter {
	return cw20Minter{
		wasmKeeper:   wasmKeeper,
		contract:     contract,
		caller:       caller,
		addressCodec: addressCodec,
	}
}

func (m cw20Minter) Mint(ctx context.Context, recipient sdk.AccAddress, amount sdkmath.Int) error {
	// cw20-base rejects zero amount mints.
	if amount.IsZero() {
		return nil
	}
	recipientStr, err := m.addressCodec.BytesToString(recipient)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(cw20MintMsg{Mint: cw20Mint{Recipient: recipientStr, Amount: amount.String()}})
	if err != nil {
		return errorsmod.Wrap(err, "failed to encode cw20 mint")
	}
	_, err = m.wasmKeeper.Execute(sdk.UnwrapSDKContext(ctx), m.contract, m.caller, msg, nil)
	return err
}
