package captoken

import (
	"testing"

	"captoken/assert"
	"captoken/test"

	"github.com/holiman/uint256"
)

func TestTokenDB_WriteReadMeta(t *testing.T) {
	storage := test.NewMemStorage()
	db := newTokenDB(storage)
	owner := randomAddress()
	want := &tokenMeta{
		name:      "Capped Token",
		symbol:    "CAP",
		decimals:  18,
		maxSupply: uint256.NewInt(1000000),
		owner:     owner,
		paused:    true,
	}
	assert.Error(t, db.WriteMeta(want))
	got, err := db.ReadMeta()
	assert.Error(t, err)
	assert.Equal(t, got.name, want.name)
	assert.Equal(t, got.symbol, want.symbol)
	assert.Equal(t, got.decimals, want.decimals)
	assert.UintEqual(t, got.maxSupply, want.maxSupply)
	assert.AddressEq(t, got.owner, owner)
	assert.True(t, got.paused)
}

func TestTokenDB_ReadMissing(t *testing.T) {
	db := newTokenDB(test.NewMemStorage())
	if _, err := db.ReadMeta(); err != ErrTokenNotDeployed {
		t.Fatalf("got: %v want: %v", err, ErrTokenNotDeployed)
	}
}
