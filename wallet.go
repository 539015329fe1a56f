// Copyright 2021 The captoken Authors
// This file is part of the captoken library.
//
// The captoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The captoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the captoken library. If not, see <https://mit-license.org/>.

package captoken

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"sync"

	"captoken/common"
	"captoken/crypto"
	"captoken/lru"
	"captoken/storage/badger"
)

var noneAddress = common.ZeroAddr

const keyCacheSize = 256

// Wallet is the badger-backed keystore. The address whose key the wallet
// holds is the caller identity for token operations; the default address is
// used when a call names no sender.
type Wallet struct {
	db          *keyStoreDB
	mu          sync.RWMutex
	defaultAddr common.Address
	cache       *lru.Cache
}

func NewWallet(storage badger.IStorage) *Wallet {
	w := &Wallet{
		db:    newKeyStoreDB(storage),
		cache: lru.NewCache(keyCacheSize),
	}
	w.defaultAddr, _ = w.db.GetDefaultAddress()
	return w
}

// AddByRandom generates a fresh key and stores it, returning its address.
func (w *Wallet) AddByRandom() (common.Address, error) {
	key, err := crypto.GenPrvKey()
	if err != nil {
		return noneAddress, err
	}
	return w.AddWallet(key)
}

func (w *Wallet) AddWallet(key *ecdsa.PrivateKey) (common.Address, error) {
	addr := crypto.DefaultPubKey2Addr(key.PublicKey)
	if err := w.db.PutPrivateKey(addr, key); err != nil {
		return noneAddress, err
	}
	if w.defaultAddr.Equals(noneAddress) {
		if err := w.SetDefault(addr); err != nil {
			return addr, nil
		}
	}
	return addr, nil
}

func (w *Wallet) GetWalletNewTime(addr common.Address) ([]byte, error) {
	return w.db.GetAddressNewTime(addr)
}

func (w *Wallet) All() map[common.Address]*ecdsa.PrivateKey {
	data := make(map[common.Address]*ecdsa.PrivateKey)
	w.db.Foreach(func(address common.Address, key *ecdsa.PrivateKey) {
		data[address] = key
	})
	return data
}

// Contains reports whether the wallet holds the key for addr.
func (w *Wallet) Contains(address common.Address) bool {
	_, err := w.GetKeyByAddress(address)
	return err == nil
}

func (w *Wallet) GetKeyByAddress(address common.Address) (*ecdsa.PrivateKey, error) {
	if der, has := w.cache.Get(address); has {
		_, pk, err := crypto.DecodePrivateKey(der)
		if err == nil {
			return pk, nil
		}
		w.cache.Remove(address)
	}
	key, err := w.db.GetPrivateKey(address)
	if err != nil {
		return nil, err
	}
	w.cache.Put(address, crypto.DefaultEncodePrivateKey(key))
	return key, nil
}

func (w *Wallet) SetDefault(address common.Address) error {
	if address.Equals(w.defaultAddr) {
		return nil
	}
	k, err := w.GetKeyByAddress(address)
	if err != nil || k == nil {
		return fmt.Errorf("not found address %s", address.B58String())
	}
	if err = w.db.SetDefaultAddress(address); err != nil {
		return err
	}
	w.mu.Lock()
	w.defaultAddr = address
	w.mu.Unlock()
	return nil
}

func (w *Wallet) GetDefault() common.Address {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.defaultAddr
}

func (w *Wallet) Remove(address common.Address) error {
	if address.Equals(w.defaultAddr) {
		return errors.New("default address cannot be deleted")
	}
	w.mu.Lock()
	if err := w.db.RemoveAddress(address); err != nil {
		w.mu.Unlock()
		return err
	}
	w.mu.Unlock()
	w.cache.Remove(address)
	return nil
}

func (w *Wallet) Export(address common.Address) ([]byte, error) {
	key, err := w.GetKeyByAddress(address)
	if err != nil {
		return nil, err
	}
	return crypto.DefaultEncodePrivateKey(key), nil
}

func (w *Wallet) Import(der []byte) (common.Address, error) {
	kv, pKey, err := crypto.DecodePrivateKey(der)
	if err != nil {
		return noneAddress, err
	}
	if kv != crypto.DefaultKeyPackVersion {
		return noneAddress, fmt.Errorf("unknown private key version %d", kv)
	}
	return w.AddWallet(pKey)
}
