// Package ledger provides a standalone store, bank and staking snapshot source for running the
// liquid distribution keeper outside of a full chain.
package ledger

import (
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
)

// NewMultiStore mounts the keys as IAVL stores on db and loads the latest version.
// Each store lives under its own key prefix of db.
func NewMultiStore(db dbm.DB, logger log.Logger, keys ...*storetypes.KVStoreKey) (storetypes.CommitMultiStore, error) {
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "failed to load store")
	}
	return cms, nil
}

// NewContext returns a context over the multistore at the given block height.
func NewContext(cms storetypes.MultiStore, height int64, logger log.Logger) sdk.Context {
	return sdk.NewContext(cms, cmtproto.Header{Height: height}, false, logger)
}
