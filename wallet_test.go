package captoken

import (
	"testing"

	"captoken/assert"
	"captoken/test"
)

func TestWallet_AddByRandom(t *testing.T) {
	w := NewWallet(test.NewMemStorage())
	addr, err := w.AddByRandom()
	assert.Error(t, err)
	assert.VerifyAddress(t, addr)
	assert.True(t, w.Contains(addr))
	// the first key becomes the default identity
	assert.AddressEq(t, w.GetDefault(), addr)
}

func TestWallet_ExportImport(t *testing.T) {
	w := NewWallet(test.NewMemStorage())
	addr, err := w.AddByRandom()
	assert.Error(t, err)
	der, err := w.Export(addr)
	assert.Error(t, err)

	other := NewWallet(test.NewMemStorage())
	imported, err := other.Import(der)
	assert.Error(t, err)
	assert.AddressEq(t, imported, addr)

	wantKey, err := w.GetKeyByAddress(addr)
	assert.Error(t, err)
	gotKey, err := other.GetKeyByAddress(imported)
	assert.Error(t, err)
	assert.PrivateKeyEqual(t, gotKey, wantKey)
}

func TestWallet_SetDefault(t *testing.T) {
	w := NewWallet(test.NewMemStorage())
	first, err := w.AddByRandom()
	assert.Error(t, err)
	second, err := w.AddByRandom()
	assert.Error(t, err)
	assert.AddressEq(t, w.GetDefault(), first)
	assert.Error(t, w.SetDefault(second))
	assert.AddressEq(t, w.GetDefault(), second)

	if err = w.SetDefault(randomAddress()); err == nil {
		t.Fatal("expected error for unknown address")
	}
}

func TestWallet_Remove(t *testing.T) {
	w := NewWallet(test.NewMemStorage())
	first, err := w.AddByRandom()
	assert.Error(t, err)
	second, err := w.AddByRandom()
	assert.Error(t, err)

	if err = w.Remove(first); err == nil {
		t.Fatal("default address must not be removable")
	}
	assert.Error(t, w.Remove(second))
	assert.True(t, !w.Contains(second))
	assert.True(t, w.Contains(first))
}

func TestWallet_All(t *testing.T) {
	w := NewWallet(test.NewMemStorage())
	want := make(map[string]bool)
	for i := 0; i < 3; i++ {
		addr, err := w.AddByRandom()
		assert.Error(t, err)
		want[addr.B58String()] = true
	}
	all := w.All()
	assert.Equal(t, len(all), 3)
	for addr := range all {
		assert.True(t, want[addr.B58String()])
	}
}

func TestWallet_Reopen(t *testing.T) {
	storage := test.NewMemStorage()
	w := NewWallet(storage)
	addr, err := w.AddByRandom()
	assert.Error(t, err)

	reopened := NewWallet(storage)
	assert.True(t, reopened.Contains(addr))
	assert.AddressEq(t, reopened.GetDefault(), addr)
}
