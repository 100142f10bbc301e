package cosmoscmd

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

const (
	flagAssetA         = "asset-a"
	flagAssetB         = "asset-b"
	flagStakingSource  = "staking-source"
	flagPermissionless = "permissionless"
	flagAutoDistribute = "auto-distribute"
	flagHeight         = "height"
	flagSnapshot       = "snapshot"
	flagCaller         = "caller"
)

// InitCmd initializes the engine with its collaborator identifiers.
func InitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the distribution engine",
		Long: `Stores the reward asset identifiers and the staking source and zeroes the
distribution counters. Assets are bank denoms minted by the module. The staking source
"` + SnapshotSource + `" reads the file passed to distribute --snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withNode(v, func(n *node) error {
				cfg := types.Config{
					AssetA:        v.GetString(flagAssetA),
					AssetB:        v.GetString(flagAssetB),
					StakingSource: v.GetString(flagStakingSource),
				}
				policy := types.TriggerPolicy{
					Permissionless: v.GetBool(flagPermissionless),
					AutoDistribute: v.GetBool(flagAutoDistribute),
				}
				err := n.execute(0, func(ctx sdk.Context) error {
					if err := n.keeper.Initialize(ctx, cfg); err != nil {
						return err
					}
					return n.keeper.SetTriggerPolicy(ctx, n.authority, policy)
				})
				if err != nil {
					return errors.Wrap(err, "failed to initialize")
				}
				cmd.Printf("initialized: asset A %s, asset B %s, staking source %s\n",
					cfg.AssetA, cfg.AssetB, cfg.StakingSource)
				return nil
			})
		},
	}

	cmd.Flags().String(flagAssetA, "", "asset A denom")
	cmd.Flags().String(flagAssetB, "", "asset B denom")
	cmd.Flags().String(flagStakingSource, SnapshotSource, "staking source identifier")
	cmd.Flags().Bool(flagPermissionless, true, "allow any caller to trigger a distribution")
	cmd.Flags().Bool(flagAutoDistribute, false, "distribute automatically once the interval elapses")
	return cmd
}

// DistributeCmd runs one distribution cycle at the given height.
func DistributeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Run a distribution cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			height, err := cast.ToUint64E(v.Get(flagHeight))
			if err != nil {
				return errors.Wrapf(err, "invalid --%s", flagHeight)
			}
			return withNode(v, func(n *node) error {
				if path := v.GetString(flagSnapshot); path != "" {
					if err := n.loadSnapshot(path); err != nil {
						return err
					}
				}
				caller := v.GetString(flagCaller)
				if caller == "" {
					caller = n.authority
				}

				var receipt types.DistributionReceipt
				err := n.execute(height, func(ctx sdk.Context) error {
					var err error
					receipt, err = n.keeper.Distribute(ctx, caller, height)
					return err
				})
				if err != nil {
					return errors.Wrap(err, "distribution rejected")
				}
				return printYAML(cmd, receiptView(receipt))
			})
		},
	}

	cmd.Flags().Uint64(flagHeight, 0, "current height")
	cmd.Flags().String(flagSnapshot, "", "staking snapshot YAML file")
	cmd.Flags().String(flagCaller, "", "caller address (defaults to the module authority)")
	return cmd
}

// StatusCmd prints the counters and the next distribution height.
func StatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show distribution counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withNode(v, func(n *node) error {
				view, err := statusOf(n)
				if err != nil {
					return err
				}
				return printYAML(cmd, view)
			})
		},
	}
}

// BalancesCmd prints the balances of an address.
func BalancesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "balances [address]",
		Short: "Show balances of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(v, func(n *node) error {
				addr, err := n.addressCodec.StringToBytes(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid address %s", args[0])
				}
				coins, err := n.bank.AllBalances(n.context(0), addr)
				if err != nil {
					return err
				}
				balances := make(map[string]string, len(coins))
				for _, coin := range coins {
					balances[coin.Denom] = formatAmount(coin.Amount)
				}
				return printYAML(cmd, balances)
			})
		},
	}
}

// SetTriggerPolicyCmd updates who may trigger distributions.
func SetTriggerPolicyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-trigger-policy",
		Short: "Update the trigger policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withNode(v, func(n *node) error {
				return n.execute(0, func(ctx sdk.Context) error {
					policy, err := n.keeper.GetTriggerPolicy(ctx)
					if err != nil {
						return err
					}
					if cmd.Flags().Changed(flagPermissionless) {
						policy.Permissionless = v.GetBool(flagPermissionless)
					}
					if cmd.Flags().Changed(flagAutoDistribute) {
						policy.AutoDistribute = v.GetBool(flagAutoDistribute)
					}
					return n.keeper.SetTriggerPolicy(ctx, n.authority, policy)
				})
			})
		},
	}
	cmd.Flags().Bool(flagPermissionless, true, "allow any caller to trigger a distribution, unchanged when unset")
	cmd.Flags().Bool(flagAutoDistribute, false, "distribute automatically once the interval elapses, unchanged when unset")
	return cmd
}

// ResumeCmd clears the halted flag after manual reconciliation.
func ResumeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume halted distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withNode(v, func(n *node) error {
				return n.execute(0, func(ctx sdk.Context) error {
					return n.keeper.ResumeDistributions(ctx, n.authority)
				})
			})
		},
	}
}

func withNode(v *viper.Viper, fn func(n *node) error) error {
	n, err := openNode(v)
	if err != nil {
		return err
	}
	defer n.Close() //nolint:errcheck // the command error is more relevant

	return fn(n)
}

type statusView struct {
	Initialized            bool                `yaml:"initialized"`
	Config                 *types.Config       `yaml:"config,omitempty"`
	TriggerPolicy          types.TriggerPolicy `yaml:"trigger_policy"`
	Halted                 bool                `yaml:"halted"`
	LastDistributionHeight uint64              `yaml:"last_distribution_height"`
	NextDistributionHeight uint64              `yaml:"next_distribution_height"`
	TotalDistributed       map[string]string   `yaml:"total_distributed,omitempty"`
	RemainingCapacity      map[string]string   `yaml:"remaining_capacity,omitempty"`
}

func statusOf(n *node) (statusView, error) {
	ctx := n.context(0)
	var view statusView

	policy, err := n.keeper.GetTriggerPolicy(ctx)
	if err != nil {
		return statusView{}, err
	}
	view.TriggerPolicy = policy
	if view.Halted, err = n.keeper.IsHalted(ctx); err != nil {
		return statusView{}, err
	}
	if view.Initialized, err = n.keeper.IsInitialized(ctx); err != nil || !view.Initialized {
		return view, err
	}

	cfg, err := n.keeper.GetConfig(ctx)
	if err != nil {
		return statusView{}, err
	}
	view.Config = &cfg
	if view.LastDistributionHeight, err = n.keeper.GetLastDistributionHeight(ctx); err != nil {
		return statusView{}, err
	}
	if view.NextDistributionHeight, err = n.keeper.NextDistributionHeight(ctx); err != nil {
		return statusView{}, err
	}

	view.TotalDistributed = map[string]string{}
	view.RemainingCapacity = map[string]string{}
	for _, asset := range types.Assets() {
		total, err := n.keeper.GetTotalDistributed(ctx, asset)
		if err != nil {
			return statusView{}, err
		}
		remaining, err := n.keeper.RemainingCapacity(ctx, asset)
		if err != nil {
			return statusView{}, err
		}
		view.TotalDistributed[asset.String()] = formatAmount(total)
		view.RemainingCapacity[asset.String()] = formatAmount(remaining)
	}
	return view, nil
}

type receiptOutput struct {
	Height       uint64 `yaml:"height"`
	PoolA        string `yaml:"pool_a"`
	PoolB        string `yaml:"pool_b"`
	StakersPaid  uint64 `yaml:"stakers_paid"`
	DistributedA string `yaml:"distributed_a"`
	DistributedB string `yaml:"distributed_b"`
	ResidualA    string `yaml:"residual_a"`
	ResidualB    string `yaml:"residual_b"`
}

func receiptView(r types.DistributionReceipt) receiptOutput {
	return receiptOutput{
		Height:       r.Height,
		PoolA:        formatAmount(r.PoolA),
		PoolB:        formatAmount(r.PoolB),
		StakersPaid:  r.StakersPaid,
		DistributedA: formatAmount(r.DistributedA),
		DistributedB: formatAmount(r.DistributedB),
		ResidualA:    formatAmount(r.Residual(types.AssetA)),
		ResidualB:    formatAmount(r.Residual(types.AssetB)),
	}
}

// formatAmount renders a base-unit amount together with its value in whole tokens.
func formatAmount(amount sdkmath.Int) string {
	tokens := decimal.NewFromBigInt(amount.BigInt(), -types.AssetDecimals)
	return amount.String() + " (" + tokens.String() + ")"
}

func printYAML(cmd *cobra.Command, v any) error {
	bz, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	cmd.Print(string(bz))
	return nil
}
