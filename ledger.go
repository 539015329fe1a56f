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
	"captoken/common"
	"captoken/common/rawencode"
	"captoken/storage/badger"

	"github.com/holiman/uint256"
)

var (
	accountKeyPre = []byte("acct:")
	supplyKey     = []byte("supply")
)

// accountObj is a single account balance being read or modified. Pending
// changes live here until the ledger commits them in one batch.
type accountObj struct {
	address common.Address
	balance *uint256.Int
}

func (obj *accountObj) Encode() ([]byte, error) {
	objmap := map[string]string{
		"address": obj.address.String(),
		"balance": obj.balance.ToBig().Text(10),
	}
	return []byte(common.SortAndEncodeMap(objmap)), nil
}

func (obj *accountObj) Decode(data []byte) error {
	r := common.StringDecodeMap(string(data))
	if r == nil {
		return nil
	}
	if address, ok := r["address"]; ok {
		obj.address = common.StrB58ToAddress(address)
	}
	if balance, ok := r["balance"]; ok {
		if num, err := common.ParseUnits(balance); err == nil {
			obj.balance = num
		}
	}
	return nil
}

// Ledger tracks per-account balances and the total issued supply. All reads
// go through an in-memory object cache; mutations touch only the cache until
// Commit writes every dirty account and the supply counter through the
// storage layer in a single shot.
//
// The ledger defines bookkeeping only. Preconditions such as the supply
// ceiling or the pause gate belong to the Token that drives it.
type Ledger struct {
	db     badger.IStorage
	objs   map[common.Address]*accountObj
	supply *uint256.Int
}

func NewLedger(db badger.IStorage) *Ledger {
	lg := &Ledger{
		db:   db,
		objs: make(map[common.Address]*accountObj),
	}
	lg.supply = uint256.NewInt(0)
	if data, err := db.GetData(supplyKey); err == nil {
		if num, err := common.ParseUnits(string(data)); err == nil {
			lg.supply = num
		}
	}
	return lg
}

func accountKey(addr common.Address) []byte {
	return append(accountKeyPre, addr.Bytes()...)
}

func (lg *Ledger) getAccount(addr common.Address) *accountObj {
	if obj, has := lg.objs[addr]; has {
		return obj
	}
	data, err := lg.db.GetData(accountKey(addr))
	if err != nil || len(data) == 0 {
		return nil
	}
	obj := &accountObj{}
	if err = rawencode.Decode(data, obj); err != nil {
		return nil
	}
	if obj.balance == nil {
		obj.balance = uint256.NewInt(0)
	}
	lg.objs[addr] = obj
	return obj
}

func (lg *Ledger) getOrNewAccount(addr common.Address) *accountObj {
	if obj := lg.getAccount(addr); obj != nil {
		return obj
	}
	obj := &accountObj{
		address: addr,
		balance: uint256.NewInt(0),
	}
	lg.objs[addr] = obj
	return obj
}

// BalanceOf returns a copy of the account balance; missing accounts read
// as zero.
func (lg *Ledger) BalanceOf(addr common.Address) *uint256.Int {
	obj := lg.getAccount(addr)
	if obj == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(obj.balance)
}

// TotalSupply returns a copy of the total issued units.
func (lg *Ledger) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(lg.supply)
}

// Mint credits an account and bumps the total supply by the same amount.
func (lg *Ledger) Mint(to common.Address, amount *uint256.Int) error {
	newSupply, overflow := new(uint256.Int).AddOverflow(lg.supply, amount)
	if overflow {
		return ErrSupplyExceeded
	}
	obj := lg.getOrNewAccount(to)
	obj.balance = new(uint256.Int).Add(obj.balance, amount)
	lg.supply = newSupply
	return nil
}

// Transfer moves amount between two accounts. The recipient balance cannot
// overflow: every balance is bounded by the total supply.
func (lg *Ledger) Transfer(from, to common.Address, amount *uint256.Int) error {
	sender := lg.getOrNewAccount(from)
	if sender.balance.Lt(amount) {
		return ErrInsufficientBalance
	}
	recipient := lg.getOrNewAccount(to)
	sender.balance = new(uint256.Int).Sub(sender.balance, amount)
	recipient.balance = new(uint256.Int).Add(recipient.balance, amount)
	return nil
}

// Commit writes every cached account and the supply counter to storage.
// Storages without batch support fall back to direct writes. A failed
// commit drops the cache so further reads see only settled state.
func (lg *Ledger) Commit() error {
	if err := lg.commit(); err != nil {
		lg.reset()
		return err
	}
	return nil
}

// reset empties the object cache and re-reads the supply counter from
// storage.
func (lg *Ledger) reset() {
	lg.objs = make(map[common.Address]*accountObj)
	lg.supply = uint256.NewInt(0)
	if data, err := lg.db.GetData(supplyKey); err == nil {
		if num, err := common.ParseUnits(string(data)); err == nil {
			lg.supply = num
		}
	}
}

func (lg *Ledger) commit() error {
	batch := lg.db.NewWriteBatch()
	put := lg.db.SetData
	if batch != nil {
		put = batch.Put
	}
	for addr, obj := range lg.objs {
		raw, err := rawencode.Encode(obj)
		if err != nil {
			return err
		}
		if err = put(accountKey(addr), raw); err != nil {
			return err
		}
	}
	if err := put(supplyKey, []byte(lg.supply.ToBig().Text(10))); err != nil {
		return err
	}
	if batch != nil {
		return lg.db.CommitWriteBatch(batch)
	}
	return nil
}
