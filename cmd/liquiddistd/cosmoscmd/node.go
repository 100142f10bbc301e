package cosmoscmd

import (
	"context"
	"path/filepath"

	addresscodecapi "cosmossdk.io/core/address"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client/flags"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tokenize-x/liquiddist/pkg/ledger"
	"github.com/tokenize-x/liquiddist/x/liquiddist/keeper"
	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

const (
	dataDir      = "data"
	dbName       = "liquiddist"
	bankStoreKey = "bank"

	// SnapshotSource is the staking source identifier resolving to the --snapshot file.
	SnapshotSource = "snapshot"
)

// snapshotHolder is the staking source registered under SnapshotSource. It is loaded once the
// distribute command knows the file.
type snapshotHolder struct {
	source types.StakingSource
}

func (h *snapshotHolder) TotalStaked(ctx context.Context) (sdkmath.Int, error) {
	if h.source == nil {
		return sdkmath.Int{}, errors.New("no staking snapshot loaded, pass --snapshot")
	}
	return h.source.TotalStaked(ctx)
}

func (h *snapshotHolder) Stakers(ctx context.Context) ([]types.StakerBalance, error) {
	if h.source == nil {
		return nil, errors.New("no staking snapshot loaded, pass --snapshot")
	}
	return h.source.Stakers(ctx)
}

// node is the keeper and the ledger bank over the persistent store of the home directory.
type node struct {
	keeper       keeper.Keeper
	bank         ledger.Bank
	snapshot     *snapshotHolder
	addressCodec addresscodecapi.Codec
	authority    string

	db     dbm.DB
	cms    storetypes.CommitMultiStore
	logger log.Logger
}

func openNode(v *viper.Viper) (*node, error) {
	logger, err := newLogger(v)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(v.GetString(flags.FlagHome), dataDir)
	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database in %s", dir)
	}

	moduleKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey(bankStoreKey)
	cms, err := ledger.NewMultiStore(db, logger, moduleKey, bankKey)
	if err != nil {
		//nolint:errcheck // the store error is returned
		db.Close()
		return nil, err
	}

	addressCodec := addresscodec.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())
	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	bank := ledger.NewBank(runtime.NewKVStoreService(bankKey))
	holder := &snapshotHolder{}

	return &node{
		keeper: keeper.NewKeeper(
			runtime.NewKVStoreService(moduleKey),
			authority,
			addressCodec,
			ledger.ModuleAccounts{},
			bank,
			nil,
			nil,
			keeper.WithStakingSource(SnapshotSource, holder),
		),
		bank:         bank,
		snapshot:     holder,
		addressCodec: addressCodec,
		authority:    authority,
		db:           db,
		cms:          cms,
		logger:       logger,
	}, nil
}

// loadSnapshot reads the staking snapshot served under SnapshotSource.
func (n *node) loadSnapshot(path string) error {
	source, err := ledger.LoadSnapshotFile(path, n.addressCodec)
	if err != nil {
		return err
	}
	n.snapshot.source = source
	return nil
}

// context returns a read-only view of the latest committed state at the height.
func (n *node) context(height uint64) sdk.Context {
	return ledger.NewContext(n.cms.CacheMultiStore(), int64(height), n.logger)
}

// execute runs fn at the height and commits a new store version only if it succeeds.
func (n *node) execute(height uint64, fn func(ctx sdk.Context) error) error {
	ctx := ledger.NewContext(n.cms, int64(height), n.logger)
	cacheCtx, writeCache := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeCache()
	n.cms.Commit()
	return nil
}

func (n *node) Close() error {
	return n.db.Close()
}
