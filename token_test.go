package captoken

import (
	"errors"
	"testing"

	"captoken/assert"
	"captoken/common"
	"captoken/crypto"
	"captoken/test"

	"github.com/holiman/uint256"
)

func randomAddress() common.Address {
	return crypto.DefaultPubKey2Addr(crypto.MustGenPrvKey().PublicKey)
}

func newTestToken(t *testing.T, maxSupply uint64) (*Token, common.Address, *test.MemStorage) {
	storage := test.NewMemStorage()
	owner := randomAddress()
	ledger := NewLedger(storage)
	token, err := NewToken(storage, ledger, Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		Decimals:  0,
		MaxSupply: uint256.NewInt(maxSupply),
	}, owner, NewEventBus())
	assert.Error(t, err)
	return token, owner, storage
}

func TestNewToken_InvalidMaxSupply(t *testing.T) {
	storage := test.NewMemStorage()
	owner := randomAddress()
	_, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(0),
	}, owner, NewEventBus())
	if err != ErrInvalidMaxSupply {
		t.Fatalf("got: %v want: %v", err, ErrInvalidMaxSupply)
	}
	_, err = NewToken(storage, NewLedger(storage), Config{
		Name:   "Capped Token",
		Symbol: "CAP",
	}, owner, NewEventBus())
	if err != ErrInvalidMaxSupply {
		t.Fatalf("got: %v want: %v", err, ErrInvalidMaxSupply)
	}
}

func TestNewToken_InvalidOwner(t *testing.T) {
	storage := test.NewMemStorage()
	_, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(1000),
	}, common.ZeroAddr, NewEventBus())
	if err != ErrInvalidOwner {
		t.Fatalf("got: %v want: %v", err, ErrInvalidOwner)
	}
}

func TestOpenToken_NotDeployed(t *testing.T) {
	storage := test.NewMemStorage()
	_, err := OpenToken(storage, NewLedger(storage), NewEventBus())
	if err != ErrTokenNotDeployed {
		t.Fatalf("got: %v want: %v", err, ErrTokenNotDeployed)
	}
}

func TestToken_Mint(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(600)))
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(600))
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(600))

	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(400)))
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(1000))

	if err := token.Mint(owner, alice, uint256.NewInt(1)); err != ErrSupplyExceeded {
		t.Fatalf("got: %v want: %v", err, ErrSupplyExceeded)
	}
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(1000))
}

func TestToken_MintPastCeiling(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	if err := token.Mint(owner, alice, uint256.NewInt(1001)); err != ErrSupplyExceeded {
		t.Fatalf("got: %v want: %v", err, ErrSupplyExceeded)
	}
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(0))
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(0))
}

func TestToken_MintOverflowAmount(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(500)))
	huge := new(uint256.Int).Sub(new(uint256.Int).SetAllOne(), uint256.NewInt(10))
	if err := token.Mint(owner, alice, huge); err != ErrSupplyExceeded {
		t.Fatalf("got: %v want: %v", err, ErrSupplyExceeded)
	}
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(500))
}

func TestToken_MintUnauthorized(t *testing.T) {
	token, _, _ := newTestToken(t, 1000)
	mallory := randomAddress()
	if err := token.Mint(mallory, mallory, uint256.NewInt(1)); err != ErrUnauthorized {
		t.Fatalf("got: %v want: %v", err, ErrUnauthorized)
	}
}

func TestToken_MintZeroRecipient(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	if err := token.Mint(owner, common.ZeroAddr, uint256.NewInt(1)); err != ErrInvalidRecipient {
		t.Fatalf("got: %v want: %v", err, ErrInvalidRecipient)
	}
}

func TestToken_Transfer(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	assert.Error(t, token.Transfer(alice, bob, uint256.NewInt(40)))
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(60))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(40))

	if err := token.Transfer(alice, bob, uint256.NewInt(61)); err != ErrInsufficientBalance {
		t.Fatalf("got: %v want: %v", err, ErrInsufficientBalance)
	}
	if err := token.Transfer(alice, common.ZeroAddr, uint256.NewInt(1)); err != ErrInvalidRecipient {
		t.Fatalf("got: %v want: %v", err, ErrInvalidRecipient)
	}
}

func TestToken_Multisend(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	carol := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(110)))
	err := token.Multisend(alice,
		[]common.Address{bob, carol},
		[]*uint256.Int{uint256.NewInt(60), uint256.NewInt(50)})
	assert.Error(t, err)
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(0))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(60))
	assert.UintEqual(t, token.BalanceOf(carol), uint256.NewInt(50))
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(110))
}

func TestToken_MultisendInsufficient(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	carol := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	err := token.Multisend(alice,
		[]common.Address{bob, carol},
		[]*uint256.Int{uint256.NewInt(60), uint256.NewInt(50)})
	if err != ErrInsufficientBalance {
		t.Fatalf("got: %v want: %v", err, ErrInsufficientBalance)
	}
	// the failed batch must leave every balance untouched
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(100))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(0))
	assert.UintEqual(t, token.BalanceOf(carol), uint256.NewInt(0))
}

func TestToken_MultisendShape(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	err := token.Multisend(alice,
		[]common.Address{bob},
		[]*uint256.Int{uint256.NewInt(1), uint256.NewInt(2)})
	if err != ErrLengthMismatch {
		t.Fatalf("got: %v want: %v", err, ErrLengthMismatch)
	}
	err = token.Multisend(alice, []common.Address{}, []*uint256.Int{})
	if err != ErrEmptyBatch {
		t.Fatalf("got: %v want: %v", err, ErrEmptyBatch)
	}
	err = token.Multisend(alice,
		[]common.Address{bob, common.ZeroAddr},
		[]*uint256.Int{uint256.NewInt(1), uint256.NewInt(2)})
	if err != ErrInvalidRecipient {
		t.Fatalf("got: %v want: %v", err, ErrInvalidRecipient)
	}
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(100))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(0))
}

func TestToken_MultisendOverflowTotal(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	carol := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(10)))
	huge := new(uint256.Int).SetAllOne()
	err := token.Multisend(alice,
		[]common.Address{bob, carol},
		[]*uint256.Int{huge, huge})
	if err != ErrBatchOverflow {
		t.Fatalf("got: %v want: %v", err, ErrBatchOverflow)
	}
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(10))
}

func TestToken_MultisendDuplicateRecipient(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	err := token.Multisend(alice,
		[]common.Address{bob, bob},
		[]*uint256.Int{uint256.NewInt(30), uint256.NewInt(20)})
	assert.Error(t, err)
	// a repeated recipient is paid once per occurrence
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(50))
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(50))
}

func TestToken_MultisendSelf(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	err := token.Multisend(alice,
		[]common.Address{alice, bob},
		[]*uint256.Int{uint256.NewInt(70), uint256.NewInt(30)})
	assert.Error(t, err)
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(70))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(30))
}

func TestToken_Pause(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))

	if err := token.Pause(alice); err != ErrUnauthorized {
		t.Fatalf("got: %v want: %v", err, ErrUnauthorized)
	}
	assert.Error(t, token.Pause(owner))
	assert.True(t, token.Paused())

	if err := token.Pause(owner); err != ErrAlreadyPaused {
		t.Fatalf("got: %v want: %v", err, ErrAlreadyPaused)
	}
	if err := token.Transfer(alice, bob, uint256.NewInt(1)); err != ErrTransfersPaused {
		t.Fatalf("got: %v want: %v", err, ErrTransfersPaused)
	}
	err := token.Multisend(alice,
		[]common.Address{bob},
		[]*uint256.Int{uint256.NewInt(1)})
	if err != ErrTransfersPaused {
		t.Fatalf("got: %v want: %v", err, ErrTransfersPaused)
	}
	// issuance stays open while transfers are gated
	assert.Error(t, token.Mint(owner, bob, uint256.NewInt(5)))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(5))

	assert.Error(t, token.Unpause(owner))
	if err = token.Unpause(owner); err != ErrNotPaused {
		t.Fatalf("got: %v want: %v", err, ErrNotPaused)
	}
	assert.Error(t, token.Transfer(alice, bob, uint256.NewInt(1)))
}

func TestToken_TransferOwnership(t *testing.T) {
	token, owner, _ := newTestToken(t, 1000)
	alice := randomAddress()
	if err := token.TransferOwnership(alice, alice); err != ErrUnauthorized {
		t.Fatalf("got: %v want: %v", err, ErrUnauthorized)
	}
	if err := token.TransferOwnership(owner, common.ZeroAddr); err != ErrInvalidOwner {
		t.Fatalf("got: %v want: %v", err, ErrInvalidOwner)
	}
	assert.Error(t, token.TransferOwnership(owner, alice))
	assert.AddressEq(t, token.Owner(), alice)

	if err := token.Mint(owner, alice, uint256.NewInt(1)); err != ErrUnauthorized {
		t.Fatalf("got: %v want: %v", err, ErrUnauthorized)
	}
	assert.Error(t, token.Mint(alice, alice, uint256.NewInt(1)))
}

func TestToken_Reload(t *testing.T) {
	storage := test.NewMemStorage()
	owner := randomAddress()
	alice := randomAddress()
	token, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		Decimals:  8,
		MaxSupply: uint256.NewInt(1000),
	}, owner, NewEventBus())
	assert.Error(t, err)
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(700)))
	assert.Error(t, token.Pause(owner))

	reloaded, err := OpenToken(storage, NewLedger(storage), NewEventBus())
	assert.Error(t, err)
	assert.Equal(t, reloaded.Name(), "Capped Token")
	assert.Equal(t, reloaded.Symbol(), "CAP")
	assert.Equal(t, reloaded.Decimals(), uint8(8))
	assert.UintEqual(t, reloaded.MaxSupply(), uint256.NewInt(1000))
	assert.UintEqual(t, reloaded.TotalSupply(), uint256.NewInt(700))
	assert.UintEqual(t, reloaded.BalanceOf(alice), uint256.NewInt(700))
	assert.AddressEq(t, reloaded.Owner(), owner)
	assert.True(t, reloaded.Paused())

	if err = reloaded.Mint(owner, alice, uint256.NewInt(301)); err != ErrSupplyExceeded {
		t.Fatalf("got: %v want: %v", err, ErrSupplyExceeded)
	}
}

func TestToken_MintEvent(t *testing.T) {
	storage := test.NewMemStorage()
	owner := randomAddress()
	alice := randomAddress()
	eventBus := NewEventBus()
	token, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(1000),
	}, owner, eventBus)
	assert.Error(t, err)
	sub := eventBus.Subscript(MintEvent{})
	defer sub.Unsubscribe()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(9)))
	got := (<-sub.Chan()).(MintEvent)
	assert.AddressEq(t, got.To, alice)
	assert.UintEqual(t, got.Amount, uint256.NewInt(9))
}

func TestToken_MultisendEvents(t *testing.T) {
	storage := test.NewMemStorage()
	owner := randomAddress()
	alice := randomAddress()
	bob := randomAddress()
	carol := randomAddress()
	eventBus := NewEventBus()
	token, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(1000),
	}, owner, eventBus)
	assert.Error(t, err)
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))
	sub := eventBus.Subscript(TransferEvent{})
	defer sub.Unsubscribe()
	err = token.Multisend(alice,
		[]common.Address{bob, carol},
		[]*uint256.Int{uint256.NewInt(10), uint256.NewInt(20)})
	assert.Error(t, err)
	got := make(map[common.Address]*uint256.Int)
	for i := 0; i < 2; i++ {
		ev := (<-sub.Chan()).(TransferEvent)
		assert.AddressEq(t, ev.From, alice)
		got[ev.To] = ev.Amount
	}
	assert.UintEqual(t, got[bob], uint256.NewInt(10))
	assert.UintEqual(t, got[carol], uint256.NewInt(20))
}

func newFaultyToken(t *testing.T, maxSupply uint64) (*Token, common.Address, *test.FaultyStorage) {
	storage := test.NewFaultyStorage()
	owner := randomAddress()
	token, err := NewToken(storage, NewLedger(storage), Config{
		Name:      "Capped Token",
		Symbol:    "CAP",
		Decimals:  0,
		MaxSupply: uint256.NewInt(maxSupply),
	}, owner, NewEventBus())
	assert.Error(t, err)
	return token, owner, storage
}

func TestToken_MintFailedCommit(t *testing.T) {
	token, owner, storage := newFaultyToken(t, 1000)
	alice := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))

	storage.FailWrites(errors.New("write rejected"))
	if err := token.Mint(owner, alice, uint256.NewInt(600)); err == nil {
		t.Fatal("expected commit error")
	}
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(100))
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(100))

	storage.FailWrites(nil)
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(50)))
	assert.UintEqual(t, token.TotalSupply(), uint256.NewInt(150))
	assert.UintEqual(t, NewLedger(storage).TotalSupply(), uint256.NewInt(150))
}

func TestToken_MultisendFailedCommit(t *testing.T) {
	token, owner, storage := newFaultyToken(t, 1000)
	alice := randomAddress()
	bob := randomAddress()
	carol := randomAddress()
	assert.Error(t, token.Mint(owner, alice, uint256.NewInt(100)))

	storage.FailWrites(errors.New("write rejected"))
	err := token.Multisend(alice,
		[]common.Address{bob, carol},
		[]*uint256.Int{uint256.NewInt(10), uint256.NewInt(20)})
	if err == nil {
		t.Fatal("expected commit error")
	}
	assert.UintEqual(t, token.BalanceOf(alice), uint256.NewInt(100))
	assert.UintEqual(t, token.BalanceOf(bob), uint256.NewInt(0))
	assert.UintEqual(t, token.BalanceOf(carol), uint256.NewInt(0))
}
