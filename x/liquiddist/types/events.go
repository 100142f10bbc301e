package types

// Event types and attribute keys.
const (
	EventTypeDistribution = "liquid_distribution"
	EventTypeReward       = "liquid_reward"

	AttributeKeyHeight       = "height"
	AttributeKeyPoolA        = "pool_a"
	AttributeKeyPoolB        = "pool_b"
	AttributeKeyStakersPaid  = "stakers_paid"
	AttributeKeyResidualA    = "residual_a"
	AttributeKeyResidualB    = "residual_b"
	AttributeKeyStaker       = "staker"
	AttributeKeyRewardA      = "reward_a"
	AttributeKeyRewardB      = "reward_b"
	AttributeValueActionName = "distribute_tokens"
)
