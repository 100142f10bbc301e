package simapp

import (
	"context"
	"encoding/json"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"github.com/pkg/errors"

	"github.com/tokenize-x/liquiddist/x/liquiddist/types"
)

var (
	_ types.BankKeeper    = &FailingBank{}
	_ types.StakingKeeper = StakingKeeper{}
	_ types.WasmKeeper    = &WasmKeeper{}
)

// ErrInjected is returned by the fakes when configured to fail.
var ErrInjected = errors.New("injected failure")

// FailingBank forwards to the wrapped bank and fails every send after the first FailAfter sends.
type FailingBank struct {
	types.BankKeeper
	FailAfter int

	sends int
}

// SendCoinsFromModuleToAccount implements types.BankKeeper.
func (b *FailingBank) SendCoinsFromModuleToAccount(
	ctx context.Context,
	senderModule string,
	recipientAddr sdk.AccAddress,
	amt sdk.Coins,
) error {
	if b.sends >= b.FailAfter {
		return ErrInjected
	}
	b.sends++
	return b.BankKeeper.SendCoinsFromModuleToAccount(ctx, senderModule, recipientAddr, amt)
}

// StakingKeeper serves a fixed validator and delegation set.
type StakingKeeper struct {
	Validators  []stakingtypes.Validator
	Delegations []stakingtypes.Delegation
}

// GetAllValidators implements types.StakingKeeper.
func (k StakingKeeper) GetAllValidators(context.Context) ([]stakingtypes.Validator, error) {
	return k.Validators, nil
}

// GetAllDelegations implements types.StakingKeeper.
func (k StakingKeeper) GetAllDelegations(context.Context) ([]stakingtypes.Delegation, error) {
	return k.Delegations, nil
}

// ExecutedMsg is a contract execution recorded by WasmKeeper.
type ExecutedMsg struct {
	Contract sdk.AccAddress
	Caller   sdk.AccAddress
	Msg      json.RawMessage
}

// WasmKeeper records executions and answers smart queries with QueryHandler.
type WasmKeeper struct {
	QueryHandler func(contract sdk.AccAddress, req []byte) ([]byte, error)
	// FailExecuteAfter fails executions once that many have succeeded, negative never fails.
	FailExecuteAfter int

	Executed []ExecutedMsg
}

// NewWasmKeeper returns a wasm keeper that never fails executions.
func NewWasmKeeper() *WasmKeeper {
	return &WasmKeeper{FailExecuteAfter: -1}
}

// Execute implements types.ContractExecutor.
func (k *WasmKeeper) Execute(
	_ sdk.Context,
	contractAddress, caller sdk.AccAddress,
	msg []byte,
	_ sdk.Coins,
) ([]byte, error) {
	if k.FailExecuteAfter >= 0 && len(k.Executed) >= k.FailExecuteAfter {
		return nil, ErrInjected
	}
	k.Executed = append(k.Executed, ExecutedMsg{Contract: contractAddress, Caller: caller, Msg: msg})
	return nil, nil
}

// QuerySmart implements types.ContractQuerier.
func (k *WasmKeeper) QuerySmart(_ context.Context, contractAddr sdk.AccAddress, req []byte) ([]byte, error) {
	if k.QueryHandler == nil {
		return nil, errors.New("no query handler")
	}
	return k.QueryHandler(contractAddr, req)
}

// Int parses a decimal integer, panicking on malformed input.
func Int(s string) sdkmath.Int {
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		panic(errors.Errorf("invalid integer %q", s))
	}
	return v
}
