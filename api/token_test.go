package api

import (
	"fmt"
	"testing"

	"captoken"
	"captoken/common"
	"captoken/crypto"
	"captoken/test"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) (*TokenAPIHandler, *WalletHandler, common.Address) {
	stateDb := test.NewMemStorage()
	keysDb := test.NewMemStorage()
	wallet := captoken.NewWallet(keysDb)
	owner, err := wallet.AddByRandom()
	require.NoError(t, err)
	token, err := captoken.NewToken(stateDb, captoken.NewLedger(stateDb), captoken.Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		Decimals:  2,
		MaxSupply: uint256.NewInt(100000),
	}, owner, captoken.NewEventBus())
	require.NoError(t, err)
	return &TokenAPIHandler{Token: token, Wallet: wallet},
		&WalletHandler{Wallet: wallet}, owner
}

func randomB58Address() string {
	addr := crypto.DefaultPubKey2Addr(crypto.MustGenPrvKey().PublicKey)
	return addr.B58String()
}

func TestTokenAPIHandler_GetInfo(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	var resp TokenInfoResp
	require.NoError(t, handler.GetInfo(nil, &resp))
	require.Equal(t, "Capped Token", resp.Name)
	require.Equal(t, "CAP", resp.Symbol)
	require.Equal(t, 2, resp.Decimals)
	require.Equal(t, "1000", resp.MaxSupply)
	require.Equal(t, "0", resp.TotalSupply)
	require.Equal(t, owner.B58String(), resp.Owner)
	require.False(t, resp.Paused)
}

func TestTokenAPIHandler_Mint(t *testing.T) {
	handler, _, _ := newTestHandlers(t)
	to := randomB58Address()
	var resp string
	err := handler.Mint(MintArgs{To: to, Value: "10.50"}, &resp)
	require.NoError(t, err)
	require.Equal(t, "1050", resp)

	var balance string
	require.NoError(t, handler.BalanceOf(BalanceOfArgs{Address: to}, &balance))
	require.Equal(t, "10.5", balance)
}

func TestTokenAPIHandler_MintBadArgs(t *testing.T) {
	handler, _, _ := newTestHandlers(t)
	var resp string
	require.Error(t, handler.Mint(MintArgs{To: "", Value: "1"}, &resp))
	require.Error(t, handler.Mint(MintArgs{To: "garbage", Value: "1"}, &resp))
	require.Error(t, handler.Mint(MintArgs{To: randomB58Address(), Value: ""}, &resp))
	require.Error(t, handler.Mint(MintArgs{To: randomB58Address(), Value: "-3"}, &resp))
}

func TestTokenAPIHandler_MintForeignFrom(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	// a handler whose wallet never held the owner key must not be able
	// to act as the owner just by naming the address
	foreign := &TokenAPIHandler{
		Token:  handler.Token,
		Wallet: captoken.NewWallet(test.NewMemStorage()),
	}
	var resp string
	err := foreign.Mint(MintArgs{From: owner.B58String(), To: randomB58Address(), Value: "1"}, &resp)
	require.Error(t, err)

	var supply string
	require.NoError(t, handler.TotalSupply(nil, &supply))
	require.Equal(t, "0", supply)

	var pauseResp bool
	require.Error(t, foreign.Pause(PauseArgs{From: owner.B58String()}, &pauseResp))
	require.False(t, handler.Token.Paused())
}

func TestTokenAPIHandler_MintUnauthorized(t *testing.T) {
	handler, walletHandler, _ := newTestHandlers(t)
	var other string
	require.NoError(t, walletHandler.Create(nil, &other))
	var resp string
	err := handler.Mint(MintArgs{From: other, To: randomB58Address(), Value: "1"}, &resp)
	require.Error(t, err)
}

func TestTokenAPIHandler_TransferAndMultisend(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	var resp string
	require.NoError(t, handler.Mint(MintArgs{To: owner.B58String(), Value: "100"}, &resp))

	to := randomB58Address()
	require.NoError(t, handler.Transfer(TransferArgs{To: to, Value: "10"}, &resp))
	require.Equal(t, "90", resp)

	a, b := randomB58Address(), randomB58Address()
	err := handler.Multisend(MultisendArgs{
		To:     fmt.Sprintf("%s,%s", a, b),
		Values: "60,30",
	}, &resp)
	require.NoError(t, err)
	require.Equal(t, "0", resp)

	var balance string
	require.NoError(t, handler.BalanceOf(BalanceOfArgs{Address: a}, &balance))
	require.Equal(t, "60", balance)
	require.NoError(t, handler.BalanceOf(BalanceOfArgs{Address: b}, &balance))
	require.Equal(t, "30", balance)
}

func TestTokenAPIHandler_MultisendAtomic(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	var resp string
	require.NoError(t, handler.Mint(MintArgs{To: owner.B58String(), Value: "100"}, &resp))

	a, b := randomB58Address(), randomB58Address()
	err := handler.Multisend(MultisendArgs{
		To:     fmt.Sprintf("%s,%s", a, b),
		Values: "60,50",
	}, &resp)
	require.Error(t, err)

	var balance string
	require.NoError(t, handler.BalanceOf(BalanceOfArgs{Address: owner.B58String()}, &balance))
	require.Equal(t, "100", balance)
	require.NoError(t, handler.BalanceOf(BalanceOfArgs{Address: a}, &balance))
	require.Equal(t, "0", balance)
}

func TestTokenAPIHandler_MultisendBadShape(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	var resp string
	require.NoError(t, handler.Mint(MintArgs{To: owner.B58String(), Value: "100"}, &resp))
	require.Error(t, handler.Multisend(MultisendArgs{To: "", Values: "1"}, &resp))
	require.Error(t, handler.Multisend(MultisendArgs{
		To:     randomB58Address(),
		Values: "1,2",
	}, &resp))
	require.Error(t, handler.Multisend(MultisendArgs{
		To:     fmt.Sprintf("%s,%s", randomB58Address(), "junk"),
		Values: "1,2",
	}, &resp))
}

func TestTokenAPIHandler_PauseUnpause(t *testing.T) {
	handler, _, owner := newTestHandlers(t)
	var resp string
	require.NoError(t, handler.Mint(MintArgs{To: owner.B58String(), Value: "100"}, &resp))

	var ok bool
	require.NoError(t, handler.Pause(PauseArgs{}, &ok))
	require.True(t, ok)

	var paused bool
	require.NoError(t, handler.Paused(nil, &paused))
	require.True(t, paused)

	err := handler.Transfer(TransferArgs{To: randomB58Address(), Value: "1"}, &resp)
	require.Error(t, err)

	require.NoError(t, handler.Unpause(PauseArgs{}, &ok))
	require.NoError(t, handler.Paused(nil, &paused))
	require.False(t, paused)
}

func TestTokenAPIHandler_TransferOwnership(t *testing.T) {
	handler, walletHandler, _ := newTestHandlers(t)
	var next string
	require.NoError(t, walletHandler.Create(nil, &next))
	var resp string
	require.NoError(t, handler.TransferOwnership(TransferOwnershipArgs{To: next}, &resp))
	require.Equal(t, next, resp)

	var ownerResp string
	require.NoError(t, handler.Owner(nil, &ownerResp))
	require.Equal(t, next, ownerResp)
}
