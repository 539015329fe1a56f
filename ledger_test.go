package captoken

import (
	"errors"
	"testing"

	"captoken/assert"
	"captoken/test"

	"github.com/holiman/uint256"
)

func TestLedger_MintAndBalance(t *testing.T) {
	storage := test.NewMemStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	assert.UintEqual(t, lg.BalanceOf(alice), uint256.NewInt(0))
	assert.Error(t, lg.Mint(alice, uint256.NewInt(42)))
	assert.UintEqual(t, lg.BalanceOf(alice), uint256.NewInt(42))
	assert.UintEqual(t, lg.TotalSupply(), uint256.NewInt(42))
}

func TestLedger_SupplyOverflow(t *testing.T) {
	storage := test.NewMemStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	assert.Error(t, lg.Mint(alice, uint256.NewInt(1)))
	err := lg.Mint(alice, new(uint256.Int).SetAllOne())
	if err != ErrSupplyExceeded {
		t.Fatalf("got: %v want: %v", err, ErrSupplyExceeded)
	}
	assert.UintEqual(t, lg.TotalSupply(), uint256.NewInt(1))
}

func TestLedger_Transfer(t *testing.T) {
	storage := test.NewMemStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, lg.Mint(alice, uint256.NewInt(10)))
	assert.Error(t, lg.Transfer(alice, bob, uint256.NewInt(4)))
	assert.UintEqual(t, lg.BalanceOf(alice), uint256.NewInt(6))
	assert.UintEqual(t, lg.BalanceOf(bob), uint256.NewInt(4))

	err := lg.Transfer(alice, bob, uint256.NewInt(7))
	if err != ErrInsufficientBalance {
		t.Fatalf("got: %v want: %v", err, ErrInsufficientBalance)
	}
	assert.UintEqual(t, lg.BalanceOf(alice), uint256.NewInt(6))
}

func TestLedger_CommitAndReload(t *testing.T) {
	storage := test.NewMemStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, lg.Mint(alice, uint256.NewInt(30)))
	assert.Error(t, lg.Transfer(alice, bob, uint256.NewInt(12)))
	assert.Error(t, lg.Commit())

	fresh := NewLedger(storage)
	assert.UintEqual(t, fresh.TotalSupply(), uint256.NewInt(30))
	assert.UintEqual(t, fresh.BalanceOf(alice), uint256.NewInt(18))
	assert.UintEqual(t, fresh.BalanceOf(bob), uint256.NewInt(12))
}

func TestLedger_UncommittedNotPersisted(t *testing.T) {
	storage := test.NewMemStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	assert.Error(t, lg.Mint(alice, uint256.NewInt(5)))

	fresh := NewLedger(storage)
	assert.UintEqual(t, fresh.TotalSupply(), uint256.NewInt(0))
	assert.UintEqual(t, fresh.BalanceOf(alice), uint256.NewInt(0))
}

func TestLedger_FailedCommitDropsCache(t *testing.T) {
	storage := test.NewFaultyStorage()
	lg := NewLedger(storage)
	alice := randomAddress()
	assert.Error(t, lg.Mint(alice, uint256.NewInt(30)))
	assert.Error(t, lg.Commit())

	storage.FailWrites(errors.New("write rejected"))
	assert.Error(t, lg.Mint(alice, uint256.NewInt(10)))
	if err := lg.Commit(); err == nil {
		t.Fatal("expected commit error")
	}
	assert.UintEqual(t, lg.TotalSupply(), uint256.NewInt(30))
	assert.UintEqual(t, lg.BalanceOf(alice), uint256.NewInt(30))

	storage.FailWrites(nil)
	assert.Error(t, lg.Mint(alice, uint256.NewInt(5)))
	assert.Error(t, lg.Commit())
	assert.UintEqual(t, NewLedger(storage).TotalSupply(), uint256.NewInt(35))
}

func TestAccountObj_EncodeDecode(t *testing.T) {
	alice := randomAddress()
	obj := &accountObj{
		address: alice,
		balance: uint256.NewInt(987654321),
	}
	raw, err := obj.Encode()
	assert.Error(t, err)
	out := &accountObj{}
	assert.Error(t, out.Decode(raw))
	assert.AddressEq(t, out.address, alice)
	assert.UintEqual(t, out.balance, uint256.NewInt(987654321))
}
