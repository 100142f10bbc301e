package ledger

import (
	"context"

	"cosmossdk.io/collections"
	sdkstore "cosmossdk.io/core/store"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

var (
	balancesPrefix = collections.NewPrefix(0)
	supplyPrefix   = collections.NewPrefix(1)
)

var (
	_ types.BankKeeper    = Bank{}
	_ types.AccountKeeper = ModuleAccounts{}
)

// ModuleAccounts derives module account addresses the same way x/auth does.
type ModuleAccounts struct{}

// GetModuleAddress returns the address of the module account.
func (ModuleAccounts) GetModuleAddress(moduleName string) sdk.AccAddress {
	return authtypes.NewModuleAddress(moduleName)
}

// Bank is a minimal store-backed bank holding balances and supply per denom.
type Bank struct {
	Schema   collections.Schema
	Balances collections.Map[collections.Pair[sdk.AccAddress, string], sdkmath.Int]
	Supply   collections.Map[string, sdkmath.Int]
}

// NewBank returns a bank persisted in the store.
func NewBank(storeService sdkstore.KVStoreService) Bank {
	sb := collections.NewSchemaBuilder(storeService)
	b := Bank{
		Balances: collections.NewMap(
			sb,
			balancesPrefix,
			"balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey),
			sdk.IntValue,
		),
		Supply: collections.NewMap(sb, supplyPrefix, "supply", collections.StringKey, sdk.IntValue),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	b.Schema = schema
	return b
}

// MintCoins credits newly created coins to the module account.
func (b Bank) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errors.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}
	addr := ModuleAccounts{}.GetModuleAddress(moduleName)
	for _, coin := range amt {
		supply, err := b.SupplyOf(ctx, coin.Denom)
		if err != nil {
			return err
		}
		if err := b.Supply.Set(ctx, coin.Denom, supply.Add(coin.Amount)); err != nil {
			return err
		}
		if err := b.add(ctx, addr, coin); err != nil {
			return err
		}
	}
	return nil
}

// SendCoinsFromModuleToAccount moves coins from the module account to the recipient.
func (b Bank) SendCoinsFromModuleToAccount(
	ctx context.Context,
	senderModule string,
	recipientAddr sdk.AccAddress,
	amt sdk.Coins,
) error {
	return b.SendCoins(ctx, ModuleAccounts{}.GetModuleAddress(senderModule), recipientAddr, amt)
}

// SendCoins moves coins between accounts.
func (b Bank) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errors.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}
	for _, coin := range amt {
		balance, err := b.Balance(ctx, from, coin.Denom)
		if err != nil {
			return err
		}
		if balance.LT(coin.Amount) {
			return errors.Wrapf(sdkerrors.ErrInsufficientFunds, "%s%s is smaller than %s", balance, coin.Denom, coin)
		}
		if err := b.Balances.Set(ctx, collections.Join(from, coin.Denom), balance.Sub(coin.Amount)); err != nil {
			return err
		}
		if err := b.add(ctx, to, coin); err != nil {
			return err
		}
	}
	return nil
}

// Balance returns the balance of the denom held by the address.
func (b Bank) Balance(ctx context.Context, addr sdk.AccAddress, denom string) (sdkmath.Int, error) {
	balance, err := b.Balances.Get(ctx, collections.Join(addr, denom))
	if errors.Is(err, collections.ErrNotFound) {
		return sdkmath.ZeroInt(), nil
	}
	return balance, err
}

// AllBalances returns every non-zero balance of the address.
func (b Bank) AllBalances(ctx context.Context, addr sdk.AccAddress) (sdk.Coins, error) {
	iter, err := b.Balances.Iterate(ctx, collections.NewPrefixedPairRange[sdk.AccAddress, string](addr))
	if err != nil {
		return nil, err
	}
	// KeyValues drains and closes the iterator.
	kvs, err := iter.KeyValues()
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins()
	for _, kv := range kvs {
		coins = coins.Add(sdk.NewCoin(kv.Key.K2(), kv.Value))
	}
	return coins, nil
}

// SupplyOf returns the total minted amount of the denom.
func (b Bank) SupplyOf(ctx context.Context, denom string) (sdkmath.Int, error) {
	supply, err := b.Supply.Get(ctx, denom)
	if errors.Is(err, collections.ErrNotFound) {
		return sdkmath.ZeroInt(), nil
	}
	return supply, err
}

func (b Bank) add(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	balance, err := b.Balance(ctx, addr, coin.Denom)
	if err != nil {
		return err
	}
	return b.Balances.Set(ctx, collections.Join(addr, coin.Denom), balance.Add(coin.Amount))
}
