// Package simapp contains utils to bootstrap the liquid distribution keeper on an in-memory store.
package simapp

import (
	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/liquiddist/pkg/ledger"
	"github.com/tokenize-x/liquiddist/x/liquiddist/keeper"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

const bankStoreKey = "bank"

// Settings for the simapp initialization.
type Settings struct {
	db            dbm.DB
	logger        log.Logger
	stakingKeeper types.StakingKeeper
	wasmKeeper    types.WasmKeeper
	wrapBank      func(ledger.Bank) types.BankKeeper
	keeperOptions []keeper.Option
}

// Option represents simapp customisations.
type Option func(settings Settings) Settings

// WithCustomDB returns the simapp Option to run with different DB.
func WithCustomDB(db dbm.DB) Option {
	return func(s Settings) Settings {
		s.db = db
		return s
	}
}

// WithCustomLogger returns the simapp Option to run with different logger.
func WithCustomLogger(logger log.Logger) Option {
	return func(s Settings) Settings {
		s.logger = logger
		return s
	}
}

// WithStakingKeeper wires a staking keeper for the native staking source.
func WithStakingKeeper(stakingKeeper types.StakingKeeper) Option {
	return func(s Settings) Settings {
		s.stakingKeeper = stakingKeeper
		return s
	}
}

// WithWasmKeeper wires a wasm keeper for contract staking sources and CW20 assets.
func WithWasmKeeper(wasmKeeper types.WasmKeeper) Option {
	return func(s Settings) Settings {
		s.wasmKeeper = wasmKeeper
		return s
	}
}

// WithBankWrapper replaces the bank keeper seen by the module with a wrapper of the ledger bank.
func WithBankWrapper(wrap func(ledger.Bank) types.BankKeeper) Option {
	return func(s Settings) Settings {
		s.wrapBank = wrap
		return s
	}
}

// WithKeeperOptions passes options to the liquid distribution keeper.
func WithKeeperOptions(opts ...keeper.Option) Option {
	return func(s Settings) Settings {
		s.keeperOptions = append(s.keeperOptions, opts...)
		return s
	}
}

// App is the liquid distribution keeper wired to a ledger bank on a multistore.
type App struct {
	Keeper       keeper.Keeper
	Bank         ledger.Bank
	Authority    string
	AddressCodec address.Codec

	cms    storetypes.CommitMultiStore
	logger log.Logger
}

// New creates application instance with in-memory database and disabled logging.
func New(options ...Option) *App {
	settings := Settings{
		db:     dbm.NewMemDB(),
		logger: log.NewNopLogger(),
	}

	for _, option := range options {
		settings = option(settings)
	}

	moduleKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey(bankStoreKey)
	cms, err := ledger.NewMultiStore(settings.db, settings.logger, moduleKey, bankKey)
	if err != nil {
		panic(errors.Errorf("can't create store: %s", err))
	}

	bank := ledger.NewBank(runtime.NewKVStoreService(bankKey))
	var bankKeeper types.BankKeeper = bank
	if settings.wrapBank != nil {
		bankKeeper = settings.wrapBank(bank)
	}

	addressCodec := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()

	return &App{
		Keeper: keeper.NewKeeper(
			runtime.NewKVStoreService(moduleKey),
			authority,
			addressCodec,
			ledger.ModuleAccounts{},
			bankKeeper,
			settings.stakingKeeper,
			settings.wasmKeeper,
			settings.keeperOptions...,
		),
		Bank:         bank,
		Authority:    authority,
		AddressCodec: addressCodec,
		cms:          cms,
		logger:       settings.logger,
	}
}

// NewContext returns a context at the given block height.
func (a *App) NewContext(height int64) sdk.Context {
	return ledger.NewContext(a.cms, height, a.logger)
}

// Commit persists the pending writes as a new store version.
func (a *App) Commit() {
	a.cms.Commit()
}
