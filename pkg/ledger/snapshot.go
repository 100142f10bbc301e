package ledger

import (
	"context"
	"os"

	addresscodec "cosmossdk.io/core/address"
	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

var _ types.StakingSource = FileSource{}

// SnapshotFile is the YAML layout of a staking snapshot. Amounts are decimal strings
// since they exceed 64 bits.
type SnapshotFile struct {
	TotalStaked string        `yaml:"total_staked"`
	Stakers     []StakerEntry `yaml:"stakers"`
}

// StakerEntry is one staker of a snapshot file.
type StakerEntry struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// FileSource is a staking source reading a fixed snapshot, stakers are reported in file order.
type FileSource struct {
	snapshot types.Snapshot
}

// LoadSnapshotFile reads and parses a snapshot file.
func LoadSnapshotFile(path string, addressCodec addresscodec.Codec) (FileSource, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return FileSource{}, errors.Wrapf(err, "failed to read snapshot %s", path)
	}
	return ParseSnapshot(bz, addressCodec)
}

// ParseSnapshot parses a YAML snapshot.
func ParseSnapshot(bz []byte, addressCodec addresscodec.Codec) (FileSource, error) {
	var file SnapshotFile
	if err := yaml.Unmarshal(bz, &file); err != nil {
		return FileSource{}, errors.Wrap(err, "failed to decode snapshot")
	}

	total, ok := sdkmath.NewIntFromString(file.TotalStaked)
	if !ok {
		return FileSource{}, errors.Wrapf(types.ErrInvalidSnapshot, "total staked %q is not an integer", file.TotalStaked)
	}

	stakers := make([]types.StakerBalance, 0, len(file.Stakers))
	for _, entry := range file.Stakers {
		addr, err := addressCodec.StringToBytes(entry.Address)
		if err != nil {
			return FileSource{}, errors.Wrapf(types.ErrInvalidSnapshot, "staker %q: %s", entry.Address, err)
		}
		balance, ok := sdkmath.NewIntFromString(entry.Balance)
		if !ok {
			return FileSource{}, errors.Wrapf(types.ErrInvalidSnapshot, "staker %s balance %q is not an integer",
				entry.Address, entry.Balance)
		}
		stakers = append(stakers, types.StakerBalance{Staker: addr, Balance: balance})
	}

	return FileSource{snapshot: types.Snapshot{TotalStaked: total, Stakers: stakers}}, nil
}

// NewFileSource wraps an in-memory snapshot.
func NewFileSource(snapshot types.Snapshot) FileSource {
	return FileSource{snapshot: snapshot}
}

// TotalStaked returns the snapshot total.
func (s FileSource) TotalStaked(context.Context) (sdkmath.Int, error) {
	return s.snapshot.TotalStaked, nil
}

// Stakers returns a copy of the snapshot stakers.
func (s FileSource) Stakers(context.Context) ([]types.StakerBalance, error) {
	return lo.Map(s.snapshot.Stakers, func(sb types.StakerBalance, _ int) types.StakerBalance {
		return sb
	}), nil
}
