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
	"strconv"

	"captoken/common"
	"captoken/common/rawencode"
	"captoken/storage/badger"

	"github.com/holiman/uint256"
)

var tokenMetaKey = []byte("token:meta")

// tokenMeta is the persistent form of the token configuration plus the
// mutable owner and pause flag.
type tokenMeta struct {
	name      string
	symbol    string
	decimals  uint8
	maxSupply *uint256.Int
	owner     common.Address
	paused    bool
}

func (m *tokenMeta) Encode() ([]byte, error) {
	paused := "0"
	if m.paused {
		paused = "1"
	}
	objmap := map[string]string{
		"name":       m.name,
		"symbol":     m.symbol,
		"decimals":   strconv.Itoa(int(m.decimals)),
		"max_supply": m.maxSupply.ToBig().Text(10),
		"owner":      m.owner.String(),
		"paused":     paused,
	}
	return []byte(common.SortAndEncodeMap(objmap)), nil
}

func (m *tokenMeta) Decode(data []byte) error {
	r := common.StringDecodeMap(string(data))
	if r == nil {
		return nil
	}
	m.name = r["name"]
	m.symbol = r["symbol"]
	if decimals, ok := r["decimals"]; ok {
		if num, err := strconv.Atoi(decimals); err == nil {
			m.decimals = uint8(num)
		}
	}
	if maxSupply, ok := r["max_supply"]; ok {
		if num, err := common.ParseUnits(maxSupply); err == nil {
			m.maxSupply = num
		}
	}
	if owner, ok := r["owner"]; ok {
		m.owner = common.StrB58ToAddress(owner)
	}
	m.paused = r["paused"] == "1"
	return nil
}

type tokenDB struct {
	storage badger.IStorage
}

func newTokenDB(storage badger.IStorage) *tokenDB {
	return &tokenDB{
		storage: storage,
	}
}

func (db *tokenDB) ReadMeta() (*tokenMeta, error) {
	data, err := db.storage.GetData(tokenMetaKey)
	if err != nil || len(data) == 0 {
		return nil, ErrTokenNotDeployed
	}
	meta := &tokenMeta{}
	if err = rawencode.Decode(data, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (db *tokenDB) WriteMeta(meta *tokenMeta) error {
	raw, err := rawencode.Encode(meta)
	if err != nil {
		return err
	}
	return db.storage.SetData(tokenMetaKey, raw)
}
